package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyTokenKey error if no token signing key is configured.
	ErrEmptyTokenKey = errors.New("toml config auth.token.key can not be empty")

	// ErrEmptyTokenIssuerAudience error if token issuer or audience is missing.
	ErrEmptyTokenIssuerAudience = errors.New("toml config auth.token issuer and audience can not be empty")

	// ErrUnknownDirectoryMode error if auth.directory.mode is not a known adapter.
	ErrUnknownDirectoryMode = errors.New("toml config auth.directory.mode must be \"ldap\" or \"static\"")

	// ErrEmptyLDAPHost error if ldap mode is selected without a host.
	ErrEmptyLDAPHost = errors.New("toml config auth.directory.ldap.host can not be empty in ldap mode")
)
