// Package directory provides credential validation and profile lookup
// against an identity store.
//
// Two implementations exist behind the same interface: a live LDAP /
// Active Directory adapter and a static fixed-dataset adapter for
// environments without directory access. Which one is active is decided
// by configuration at process startup; callers only ever see the
// Directory interface.
package directory

// Profile is a user account as the directory reports it.
// It is fetched fresh on every login and never persisted by this service.
type Profile struct {
	// ID is the directory's opaque identifier for the account.
	ID string `json:"id"`
	// Username is the login name.
	Username string `json:"username"`
	// Email may be empty if the directory holds none.
	Email string `json:"email"`
	// DisplayName may be empty if the directory holds none.
	DisplayName string `json:"displayName"`
	// Roles are the names of all transitive group memberships. May be empty.
	Roles []string `json:"roles"`
}

// Directory validates credentials and resolves user profiles.
//
// Both operations fail closed: adapter errors are logged inside the
// implementation and surface as a negative result, never as a panic or
// raw error crossing this boundary.
type Directory interface {
	// ValidateCredentials reports whether the username/password pair is
	// accepted by the identity store. Any error contacting the store
	// yields false.
	ValidateCredentials(username, password string) bool

	// GetUserInfo looks up the account and returns its profile, or nil
	// when the account does not exist or the store errored.
	GetUserInfo(username string) *Profile
}

// HasRole reports whether the profile is a member of the named role.
func (p *Profile) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}

	return false
}
