// Package validate implements the token validation acknowledgment endpoint.
package validate

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/riskwatch/riskwatch/internal/auth"
	"github.com/riskwatch/riskwatch/internal/config"
)

const (
	// Path is the path of the validation endpoint.
	Path = "/validate"
)

// Service is the validate handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the validate handler.
var Handler = Service{}

// Init initializes the validate handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, verifier auth.TokenVerifier) error {
	if app == nil || cfg == nil || verifier == nil {
		return errors.New("app, cfg or verifier is nil")
	}

	s.cfg = cfg

	app.Get(Path, auth.RequireAuthenticated(verifier), s.Get)

	return nil
}

// Get acknowledges a token the gate already verified.
// Any caller reaching this handler holds a valid token by definition,
// so no further logic runs here.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"valid": true})
}
