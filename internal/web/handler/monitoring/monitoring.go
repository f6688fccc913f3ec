// Package monitoring implements the dashboard REST endpoints backed by
// the monitoring stored procedures.
package monitoring

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/riskwatch/riskwatch/internal/auth"
	"github.com/riskwatch/riskwatch/internal/config"
	"github.com/riskwatch/riskwatch/internal/db/controller/monitoring"
	"github.com/riskwatch/riskwatch/internal/db/models"
	"github.com/riskwatch/riskwatch/internal/web/handler"
)

const (
	// Path is the base path of the monitoring API.
	Path = handler.APIPrefix + "/monitoring"

	// AdminRole is the directory group required for mutations.
	AdminRole = "Administrators"
)

// Segment is one slice of a dashboard widget.
type Segment struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

// TransactionStat is the widget shape the dashboard renders.
type TransactionStat struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Count    int64     `json:"count"`
	Type     string    `json:"type"`
	Segments []Segment `json:"segments"`
}

// DeviceRequest is the body for adding a monitored device.
type DeviceRequest struct {
	Name   string `json:"name" validate:"required"`
	Type   string `json:"type" validate:"required"`
	Status string `json:"status" validate:"required"`
}

// StatusRequest is the body for updating a device status.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Service is the monitoring handler service.
type Service struct {
	cfg      *config.Config
	store    monitoring.Store
	validate *validator.Validate
}

// Handler is the monitoring handler.
var Handler = Service{}

// Init initializes the monitoring handler and registers its routes.
// Reads are open to any authenticated identity; mutations require the
// admin group.
func (s *Service) Init(app *fiber.App, cfg *config.Config, store monitoring.Store, verifier auth.TokenVerifier) error {
	if app == nil || cfg == nil || store == nil || verifier == nil {
		return errors.New("app, cfg, store or verifier is nil")
	}

	s.cfg = cfg
	s.store = store
	s.validate = validator.New()

	authenticated := auth.RequireAuthenticated(verifier)
	adminOnly := auth.RequireRole(verifier, AdminRole)

	app.Route(Path, func(router fiber.Router) {
		router.Get("/transactions", authenticated, s.GetTransactionStats)
		router.Get("/devices", authenticated, s.GetDevices)
		router.Get("/hourly-transactions", authenticated, s.GetHourlyTransactions)
		router.Get("/success-rate", authenticated, s.GetSuccessRate)
		router.Get("/service-level", authenticated, s.GetServiceLevel)
		router.Post("/devices", adminOnly, s.AddDevice)
		router.Put("/devices/:id/status", adminOnly, s.UpdateDeviceStatus)
	})

	return nil
}

// GetTransactionStats returns the shaped widget statistics.
func (s *Service) GetTransactionStats(c *fiber.Ctx) error {
	rows, err := s.store.TransactionStats()
	if err != nil {
		return s.upstreamError(c, err, "failed to fetch transaction stats")
	}

	stats := make([]TransactionStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, shapeTransactionStat(row))
	}

	return c.JSON(stats)
}

// GetDevices returns the monitored devices.
func (s *Service) GetDevices(c *fiber.Ctx) error {
	rows, err := s.store.Devices()
	if err != nil {
		return s.upstreamError(c, err, "failed to fetch devices")
	}

	return c.JSON(rows)
}

// GetHourlyTransactions returns the per-hour transaction counts.
func (s *Service) GetHourlyTransactions(c *fiber.Ctx) error {
	rows, err := s.store.HourlyTransactions()
	if err != nil {
		return s.upstreamError(c, err, "failed to fetch hourly transactions")
	}

	return c.JSON(rows)
}

// GetSuccessRate returns the current success rate.
func (s *Service) GetSuccessRate(c *fiber.Ctx) error {
	row, err := s.store.SuccessRate()
	if err != nil {
		return s.upstreamError(c, err, "failed to fetch success rate")
	}

	return c.JSON(row)
}

// GetServiceLevel returns the current service level.
func (s *Service) GetServiceLevel(c *fiber.Ctx) error {
	row, err := s.store.ServiceLevel()
	if err != nil {
		return s.upstreamError(c, err, "failed to fetch service level")
	}

	return c.JSON(row)
}

// AddDevice registers a new monitored device with zeroed usage values.
func (s *Service) AddDevice(c *fiber.Ctx) error {
	req := new(DeviceRequest)

	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, "Name, type and status are required")
	}

	device, err := s.store.AddDevice(&models.NewDevice{
		Name:      req.Name,
		Type:      req.Type,
		Status:    req.Status,
		LastCheck: time.Now(),
		Uptime:    "0d 0h 0m",
	})
	if err != nil {
		return s.upstreamError(c, err, "failed to add device")
	}

	return c.JSON(device)
}

// UpdateDeviceStatus changes the status of a monitored device.
func (s *Service) UpdateDeviceStatus(c *fiber.Ctx) error {
	req := new(StatusRequest)

	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return badRequest(c, "Status is required")
	}

	if err := s.store.UpdateDeviceStatus(c.Params("id"), req.Status); err != nil {
		return s.upstreamError(c, err, "failed to update device status")
	}

	return c.JSON(fiber.Map{"message": "Status updated"})
}

// shapeTransactionStat converts a procedure row into the widget shape
// the dashboard renders: three fixed segments per widget.
func shapeTransactionStat(row models.TransactionStatRow) TransactionStat {
	return TransactionStat{
		ID:    strconv.FormatInt(row.ID, 10),
		Title: row.Title,
		Count: row.Count,
		Type:  row.Type,
		Segments: []Segment{
			{Label: row.Label1, Value: row.Value1, Color: row.Color1},
			{Label: row.Label2, Value: row.Value2, Color: row.Color2},
			{Label: row.Label3, Value: row.Value3, Color: row.Color3},
		},
	}
}

// upstreamError logs the internal cause and answers with a generic
// message; store failures never leak detail to the caller.
func (s *Service) upstreamError(c *fiber.Ctx, err error, msg string) error {
	log.Error().Err(err).Str("path", c.Path()).Msg(msg)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg})
}
