package directory

import "errors"

var (
	// ErrUserNotFound is returned internally when a user search yields no entry.
	ErrUserNotFound = errors.New("user not found in directory")

	// ErrMultipleUsersFound is returned internally when a user search is ambiguous.
	ErrMultipleUsersFound = errors.New("multiple users found in directory")

	// ErrLDAPHostMissing is returned when the ldap adapter is built without a host.
	ErrLDAPHostMissing = errors.New("ldap host is not configured")
)
