// Package login implements the credential login endpoint.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/riskwatch/riskwatch/internal/auth"
	"github.com/riskwatch/riskwatch/internal/config"
)

const (
	// Path is the path of the login endpoint.
	Path = "/login"
)

// Request is the login request body.
type Request struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Service is the login handler service.
type Service struct {
	cfg  *config.Config
	auth *auth.Service
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, authService *auth.Service) error {
	if app == nil || cfg == nil || authService == nil {
		return errors.New("app, cfg or auth service is nil")
	}

	s.cfg = cfg
	s.auth = authService

	// publicly reachable by definition
	app.Post(Path, s.Post)

	return nil
}

// Post handles the login request.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)

	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	result, err := s.auth.Login(req.Username, req.Password)

	switch {
	case err == nil:
		return c.JSON(result)
	case errors.Is(err, auth.ErrMissingCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	case errors.Is(err, auth.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	default:
		log.Error().Err(err).Str("username", req.Username).Msg("login failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}
