// Package monitoring is the stored-procedure pass-through for the
// monitoring dashboard. Every operation maps to exactly one procedure
// call; no caching, retry or aggregation happens here.
package monitoring

import (
	"errors"

	"gorm.io/gorm"

	"github.com/riskwatch/riskwatch/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrNoRows is returned when a single-row procedure yields nothing.
	ErrNoRows = errors.New("stored procedure returned no rows")
)

// Store is the monitoring gateway's view of the relational store.
// The gorm-backed Controller implements it; tests substitute fakes.
type Store interface {
	TransactionStats() ([]models.TransactionStatRow, error)
	Devices() ([]models.DeviceRow, error)
	HourlyTransactions() ([]models.HourlyTransactionRow, error)
	SuccessRate() (*models.SuccessRateRow, error)
	ServiceLevel() (*models.ServiceLevelRow, error)
	AddDevice(device *models.NewDevice) (*models.DeviceRow, error)
	UpdateDeviceStatus(id, status string) error
}

// Controller calls the monitoring stored procedures through gorm.
type Controller struct {
	db *gorm.DB
}

var _ Store = (*Controller)(nil)

// New creates a stored-procedure controller on the given connection.
func New(db *gorm.DB) (*Controller, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	return &Controller{db: db}, nil
}

// TransactionStats executes sp_GetTransactionStats.
func (c *Controller) TransactionStats() ([]models.TransactionStatRow, error) {
	var rows []models.TransactionStatRow

	if err := c.db.Raw("CALL sp_GetTransactionStats()").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// Devices executes sp_GetMonitoredDevices.
func (c *Controller) Devices() ([]models.DeviceRow, error) {
	var rows []models.DeviceRow

	if err := c.db.Raw("CALL sp_GetMonitoredDevices()").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// HourlyTransactions executes sp_GetHourlyTransactions.
func (c *Controller) HourlyTransactions() ([]models.HourlyTransactionRow, error) {
	var rows []models.HourlyTransactionRow

	if err := c.db.Raw("CALL sp_GetHourlyTransactions()").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// SuccessRate executes sp_GetSuccessRate and returns its first row.
func (c *Controller) SuccessRate() (*models.SuccessRateRow, error) {
	var rows []models.SuccessRateRow

	if err := c.db.Raw("CALL sp_GetSuccessRate()").Scan(&rows).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	return &rows[0], nil
}

// ServiceLevel executes sp_GetServiceLevel and returns its first row.
func (c *Controller) ServiceLevel() (*models.ServiceLevelRow, error) {
	var rows []models.ServiceLevelRow

	if err := c.db.Raw("CALL sp_GetServiceLevel()").Scan(&rows).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	return &rows[0], nil
}

// AddDevice executes sp_AddMonitoredDevice and returns the created row.
func (c *Controller) AddDevice(device *models.NewDevice) (*models.DeviceRow, error) {
	var rows []models.DeviceRow

	err := c.db.Raw(
		"CALL sp_AddMonitoredDevice(?, ?, ?, ?, ?, ?, ?, ?)",
		device.Name,
		device.Type,
		device.Status,
		device.LastCheck,
		device.CPUUsage,
		device.MemoryUsage,
		device.DiskUsage,
		device.Uptime,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	return &rows[0], nil
}

// UpdateDeviceStatus executes sp_UpdateDeviceStatus.
func (c *Controller) UpdateDeviceStatus(id, status string) error {
	return c.db.Exec("CALL sp_UpdateDeviceStatus(?, ?)", id, status).Error
}
