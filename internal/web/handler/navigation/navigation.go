// Package navigation serves the role-filtered navigation tree.
package navigation

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/riskwatch/riskwatch/internal/auth"
	"github.com/riskwatch/riskwatch/internal/config"
	"github.com/riskwatch/riskwatch/internal/web/handler"
	"github.com/riskwatch/riskwatch/internal/web/navigation"
)

// Path is the navigation endpoint path.
const Path = handler.APIPrefix + "/navigation"

// Service is the navigation handler service.
type Service struct {
	cfg     *config.Config
	entries []navigation.Entry
}

// Handler is the navigation handler.
var Handler = Service{}

// Init initializes the navigation handler and registers its route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, verifier auth.TokenVerifier) error {
	if app == nil || cfg == nil || verifier == nil {
		return errors.New("app, cfg or verifier is nil")
	}

	s.cfg = cfg
	s.entries = navigation.Default()

	app.Get(Path, auth.RequireAuthenticated(verifier), s.Get)

	return nil
}

// Get returns the navigation entries visible to the caller's display
// role.
func (s *Service) Get(c *fiber.Ctx) error {
	claims := auth.ClaimsFromContext(c)

	role := navigation.DisplayRole(claims.Roles)

	return c.JSON(fiber.Map{
		"role":  role,
		"items": navigation.Filter(s.entries, role),
	})
}
