// Package web wires the fiber application: middleware, health probe
// and the REST handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/riskwatch/riskwatch/internal/auth"
	"github.com/riskwatch/riskwatch/internal/config"
	monitoringstore "github.com/riskwatch/riskwatch/internal/db/controller/monitoring"
	"github.com/riskwatch/riskwatch/internal/directory"
	fiberlogger "github.com/riskwatch/riskwatch/internal/logger/adapter/fiber"
	"github.com/riskwatch/riskwatch/internal/token"
	"github.com/riskwatch/riskwatch/internal/web/handler"
	loginhandler "github.com/riskwatch/riskwatch/internal/web/handler/login"
	monitoringhandler "github.com/riskwatch/riskwatch/internal/web/handler/monitoring"
	navigationhandler "github.com/riskwatch/riskwatch/internal/web/handler/navigation"
	validatehandler "github.com/riskwatch/riskwatch/internal/web/handler/validate"
)

// HealthPath is the public liveness probe path.
const HealthPath = "/healthz"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
	issuer       *token.Issuer
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so the
	// health probe returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration,
// database connection and directory adapter.
func New(cfg *config.Config, db *gorm.DB, dir directory.Directory) (*Service, error) {
	if cfg == nil || db == nil || dir == nil {
		return nil, errors.New("cfg, db or directory is nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "RiskWatch",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   jsonErrorHandler,
		},
	)

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: HealthPath,
	}))

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	issuer := token.NewIssuer(
		[]byte(cfg.Auth.Token.Key),
		cfg.Auth.Token.Issuer,
		cfg.Auth.Token.Audience,
		cfg.Auth.Token.ExpiryTime,
	)

	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: auth.NewService(dir, issuer),
		issuer:      issuer,
	}
	service.alive.Store(true)

	// root identifies the service for probes and humans
	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "riskwatch"})
	})

	// health probe stays outside the access gate
	app.Get(HealthPath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "shutting down"})
		}

		return c.JSON(fiber.Map{"status": "ok"})
	})

	store, err := monitoringstore.New(db)
	if err != nil {
		return nil, err
	}

	// init handlers (they register their own routes with access checks)
	if err := loginhandler.Handler.Init(app, cfg, service.authService); err != nil {
		return nil, err
	}

	if err := validatehandler.Handler.Init(app, cfg, issuer); err != nil {
		return nil, err
	}

	if err := navigationhandler.Handler.Init(app, cfg, issuer); err != nil {
		return nil, err
	}

	if err := monitoringhandler.Handler.Init(app, cfg, store, issuer); err != nil {
		return nil, err
	}

	return service, nil
}

// jsonErrorHandler keeps unhandled errors in the same JSON envelope the
// handlers use.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	if code == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}

	return c.Status(code).JSON(fiber.Map{"message": http.StatusText(code)})
}
