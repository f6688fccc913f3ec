// Package daemon assembles the service: database, directory adapter
// and web service, selected and configured from the config value.
package daemon

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/riskwatch/riskwatch/internal/config"
	"github.com/riskwatch/riskwatch/internal/db/dsn"
	"github.com/riskwatch/riskwatch/internal/directory"
	"github.com/riskwatch/riskwatch/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start runs the web service until a shutdown signal arrives.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	dir, err := openDirectory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up directory adapter: %w", err)
	}

	webService, err := web.New(cfg, db, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to set up web service: %w", err)
	}

	return &Daemon{cfg: cfg, webService: webService}, nil
}

// openDatabase opens the relational store with the configured gorm
// engine. The sqlite engine exists for dev environments; the stored
// procedures are expected to be present either way.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DB.GormEngine == "sqlite" {
		log.Warn().Str("path", cfg.DB.SQLitePath).Msg("using sqlite engine, intended for dev only")

		return gorm.Open(sqlite.Open(cfg.DB.SQLitePath), &gorm.Config{})
	}

	return gorm.Open(gormmysql.Open(dsn.Create(cfg)), &gorm.Config{})
}

// openDirectory builds the directory adapter the config selects.
func openDirectory(cfg *config.Config) (directory.Directory, error) {
	if cfg.Auth.Directory.Mode == config.DirectoryModeStatic {
		log.Info().Msg("using static directory adapter")

		return directory.NewStatic(), nil
	}

	ldapCfg := cfg.Auth.Directory.LDAP

	return directory.NewLDAP(&directory.LDAPConfig{
		Host:            ldapCfg.Host,
		Port:            ldapCfg.Port,
		UseSSL:          ldapCfg.UseSSL,
		UseTLS:          ldapCfg.UseTLS,
		SkipVerify:      ldapCfg.SkipVerify,
		BindDN:          ldapCfg.BindDN,
		BindPassword:    ldapCfg.BindPassword,
		BaseDN:          ldapCfg.BaseDN,
		UserFilter:      ldapCfg.UserFilter,
		GroupBaseDN:     ldapCfg.GroupBaseDN,
		GroupFilter:     ldapCfg.GroupFilter,
		GroupNameAttr:   ldapCfg.GroupNameAttr,
		UsernameAttr:    ldapCfg.UsernameAttr,
		EmailAttr:       ldapCfg.EmailAttr,
		DisplayNameAttr: ldapCfg.DisplayNameAttr,
		Timeout:         ldapCfg.Timeout,
	})
}
