package directory

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"
)

// LDAPConfig holds LDAP/Active Directory connection settings.
type LDAPConfig struct {
	// Host is the LDAP server hostname or IP address.
	Host string
	// Port is the LDAP server port (typically 389 for LDAP, 636 for LDAPS).
	Port int
	// UseSSL enables LDAPS (LDAP over SSL/TLS) on port 636.
	UseSSL bool
	// UseTLS enables StartTLS to upgrade an LDAP connection to TLS.
	UseTLS bool
	// SkipVerify skips TLS certificate verification (insecure, for testing only).
	SkipVerify bool
	// BindDN is the distinguished name to bind with for performing searches.
	BindDN string
	// BindPassword is the password for the bind DN.
	BindPassword string
	// BaseDN is the base distinguished name for user searches.
	BaseDN string
	// UserFilter is the LDAP filter for finding users (e.g., "(sAMAccountName={username})").
	// The {username} placeholder is replaced with the actual username.
	UserFilter string
	// GroupBaseDN is the base distinguished name for group searches.
	GroupBaseDN string
	// GroupFilter is the LDAP filter for finding groups (e.g., "(member={userdn})").
	// The {userdn} placeholder is replaced with the user's DN.
	GroupFilter string
	// GroupNameAttr is the LDAP attribute containing the group name (e.g., "cn").
	GroupNameAttr string
	// UsernameAttr is the LDAP attribute containing the username (e.g., "uid", "sAMAccountName").
	UsernameAttr string
	// EmailAttr is the LDAP attribute containing the email address (e.g., "mail").
	EmailAttr string
	// DisplayNameAttr is the LDAP attribute containing the display name (e.g., "displayName").
	DisplayNameAttr string
	// Timeout is the connection timeout in seconds.
	Timeout int
}

// LDAP authenticates and resolves profiles against a live directory server.
type LDAP struct {
	config *LDAPConfig
}

var _ Directory = (*LDAP)(nil)

// NewLDAP creates a directory adapter for a live LDAP server.
func NewLDAP(config *LDAPConfig) (*LDAP, error) {
	if config.Host == "" {
		return nil, ErrLDAPHostMissing
	}

	// Set defaults
	if config.UsernameAttr == "" {
		config.UsernameAttr = "uid"
	}

	if config.EmailAttr == "" {
		config.EmailAttr = "mail"
	}

	if config.DisplayNameAttr == "" {
		config.DisplayNameAttr = "displayName"
	}

	if config.GroupNameAttr == "" {
		config.GroupNameAttr = "cn"
	}

	if config.UserFilter == "" {
		config.UserFilter = "(uid={username})"
	}

	if config.Timeout == 0 {
		config.Timeout = 10
	}

	return &LDAP{config: config}, nil
}

// ValidateCredentials binds to the directory as the resolved user DN.
// Any failure along the way (connect, service bind, search, user bind)
// is logged and reported as invalid credentials.
func (d *LDAP) ValidateCredentials(username, password string) bool {
	conn, err := d.connect()
	if err != nil {
		log.Error().Err(err).Msg("directory: connect failed during credential validation")
		return false
	}

	defer closeConn(conn)

	if err = d.bindService(conn); err != nil {
		log.Error().Err(err).Msg("directory: service bind failed during credential validation")
		return false
	}

	entry, err := d.searchUserEntry(conn, username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("directory: user search failed during credential validation")
		return false
	}

	if err = conn.Bind(entry.DN, password); err != nil {
		log.Info().Str("username", username).Msg("directory: credential validation rejected")
		return false
	}

	return true
}

// GetUserInfo resolves the account's profile and transitive group names.
// Returns nil when the account is absent or the directory errored.
func (d *LDAP) GetUserInfo(username string) *Profile {
	conn, err := d.connect()
	if err != nil {
		log.Error().Err(err).Msg("directory: connect failed during profile lookup")
		return nil
	}

	defer closeConn(conn)

	if err = d.bindService(conn); err != nil {
		log.Error().Err(err).Msg("directory: service bind failed during profile lookup")
		return nil
	}

	entry, err := d.searchUserEntry(conn, username)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("directory: profile lookup failed")
		return nil
	}

	groups, err := d.searchUserGroups(conn, entry.DN)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("directory: group search failed")
		return nil
	}

	return &Profile{
		ID:          entry.DN,
		Username:    entry.GetAttributeValue(d.config.UsernameAttr),
		Email:       entry.GetAttributeValue(d.config.EmailAttr),
		DisplayName: entry.GetAttributeValue(d.config.DisplayNameAttr),
		Roles:       groups,
	}
}

// connect establishes a connection to the LDAP server.
func (d *LDAP) connect() (*ldap.Conn, error) {
	hostPort := net.JoinHostPort(d.config.Host, strconv.Itoa(d.config.Port))

	var ldapURL string
	if d.config.UseSSL {
		ldapURL = "ldaps://" + hostPort
	} else {
		ldapURL = "ldap://" + hostPort
	}

	var tlsConfig *tls.Config
	if d.config.UseSSL || d.config.UseTLS {
		tlsConfig = &tls.Config{
			InsecureSkipVerify: d.config.SkipVerify, //nolint:gosec // skipping verifying tls is ok
			ServerName:         d.config.Host,
		}
	}

	conn, err := ldap.DialURL(ldapURL, ldap.DialWithTLSConfig(tlsConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to LDAP server: %w", err)
	}

	// Upgrade to TLS if requested (for non-SSL connections)
	if !d.config.UseSSL && d.config.UseTLS {
		if errStartTLS := conn.StartTLS(tlsConfig); errStartTLS != nil {
			closeConn(conn)

			return nil, fmt.Errorf("failed to start TLS: %w", errStartTLS)
		}
	}

	if d.config.Timeout > 0 {
		conn.SetTimeout(time.Duration(d.config.Timeout) * time.Second)
	}

	return conn, nil
}

// bindService binds with the configured service account (if provided)
// to perform searches.
func (d *LDAP) bindService(conn *ldap.Conn) error {
	if d.config.BindDN == "" {
		return nil
	}

	if err := conn.Bind(d.config.BindDN, d.config.BindPassword); err != nil {
		return fmt.Errorf("failed to bind with service account: %w", err)
	}

	return nil
}

// searchUserEntry searches LDAP for the given username and returns a single entry.
func (d *LDAP) searchUserEntry(conn *ldap.Conn, username string) (*ldap.Entry, error) {
	userFilter := strings.ReplaceAll(d.config.UserFilter, "{username}", ldap.EscapeFilter(username))
	searchRequest := ldap.NewSearchRequest(
		d.config.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, // Size limit
		d.config.Timeout,
		false,
		userFilter,
		[]string{
			d.config.UsernameAttr,
			d.config.EmailAttr,
			d.config.DisplayNameAttr,
			"dn",
		},
		nil,
	)

	searchResult, err := conn.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to search for user: %w", err)
	}

	switch len(searchResult.Entries) {
	case 0:
		return nil, ErrUserNotFound
	case 1:
		return searchResult.Entries[0], nil
	default:
		return nil, ErrMultipleUsersFound
	}
}

// searchUserGroups retrieves the names of all groups a user belongs to.
func (d *LDAP) searchUserGroups(conn *ldap.Conn, userDN string) ([]string, error) {
	if d.config.GroupBaseDN == "" {
		return nil, nil
	}

	groupFilter := strings.ReplaceAll(d.config.GroupFilter, "{userdn}", ldap.EscapeFilter(userDN))
	searchRequest := ldap.NewSearchRequest(
		d.config.GroupBaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		d.config.Timeout,
		false,
		groupFilter,
		[]string{d.config.GroupNameAttr, "dn"},
		nil,
	)

	searchResult, err := conn.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to search for groups: %w", err)
	}

	groups := make([]string, 0, len(searchResult.Entries))

	for _, entry := range searchResult.Entries {
		name := entry.GetAttributeValue(d.config.GroupNameAttr)
		if name == "" {
			// fall back to the DN when the name attribute is absent
			name = entry.DN
		}

		groups = append(groups, name)
	}

	return groups, nil
}

// TestConnection tests the LDAP server connection and bind credentials.
// Returns nil if the connection and service bind are successful.
func (d *LDAP) TestConnection() error {
	conn, err := d.connect()
	if err != nil {
		return err
	}

	defer closeConn(conn)

	if d.config.BindDN != "" {
		if err := conn.Bind(d.config.BindDN, d.config.BindPassword); err != nil {
			return fmt.Errorf("bind failed: %w", err)
		}
	}

	return nil
}

func closeConn(conn *ldap.Conn) {
	if err := conn.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close LDAP connection")
	}
}
