package auth

import "errors"

var (
	// ErrMissingCredentials is returned when username or password is empty.
	// The directory is never contacted in this case.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrInvalidCredentials is returned when the directory rejects the pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProfileNotFound is returned when credentials validate but no
	// profile resolves (inconsistent directory state).
	ErrProfileNotFound = errors.New("user profile not found")
)
