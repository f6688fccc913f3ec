// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

const defaultTokenExpiry = 8 * time.Hour

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv("RISKWATCH_CONFIG_JSON")

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to merge json config from env")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings for riskwatch.
// Only the parameters the daemon can not start without are checked here;
// everything else is the responsibility of the component consuming it.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Auth.Token.Key == "" {
		return errors.Wrap(ErrEmptyTokenKey, invalidErrMessage)
	}

	if c.Auth.Token.Issuer == "" || c.Auth.Token.Audience == "" {
		return errors.Wrap(ErrEmptyTokenIssuerAudience, invalidErrMessage)
	}

	if c.Auth.Token.ExpiryTime == 0 {
		c.Auth.Token.ExpiryTime = defaultTokenExpiry
	}

	switch c.Auth.Directory.Mode {
	case DirectoryModeLDAP, DirectoryModeStatic:
	case "":
		c.Auth.Directory.Mode = DirectoryModeStatic
	default:
		return errors.Wrap(ErrUnknownDirectoryMode, invalidErrMessage)
	}

	if c.Auth.Directory.Mode == DirectoryModeLDAP && c.Auth.Directory.LDAP.Host == "" {
		return errors.Wrap(ErrEmptyLDAPHost, invalidErrMessage)
	}

	return nil
}
