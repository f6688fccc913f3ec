package config

import (
	"time"

	"github.com/riskwatch/riskwatch/internal/logger"
)

// Directory mode values select which directory adapter the daemon wires in.
const (
	// DirectoryModeLDAP authenticates against a live LDAP / Active Directory server.
	DirectoryModeLDAP = "ldap"
	// DirectoryModeStatic authenticates against the built-in fixed dataset.
	DirectoryModeStatic = "static"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}

// Auth groups the authentication settings.
type Auth struct {
	Token     Token
	Directory Directory
}

// Token holds the bearer token signing settings.
type Token struct {
	Key        string        // symmetric signing key
	Issuer     string        // echoed into the iss claim and required on validation
	Audience   string        // echoed into the aud claim and required on validation
	ExpiryTime time.Duration // token lifetime, defaults to 8h
}

// Directory selects and configures the directory adapter.
type Directory struct {
	Mode string // "ldap" or "static"
	LDAP LDAP
}

// LDAP holds the live directory connection settings.
type LDAP struct {
	Host            string
	Port            int
	UseSSL          bool
	UseTLS          bool
	SkipVerify      bool
	BindDN          string
	BindPassword    string
	BaseDN          string
	UserFilter      string // e.g. "(sAMAccountName={username})"
	GroupBaseDN     string
	GroupFilter     string // e.g. "(member={userdn})"
	GroupNameAttr   string
	UsernameAttr    string
	EmailAttr       string
	DisplayNameAttr string
	Timeout         int // seconds
}
