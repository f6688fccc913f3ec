package directory

import (
	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// staticAccount couples a canned profile with its password digest.
type staticAccount struct {
	profile      Profile
	passwordHash string
}

// Static is the fixed-dataset directory used in environments without
// directory access. It knows exactly two accounts.
type Static struct {
	accounts map[string]staticAccount
}

var _ Directory = (*Static)(nil)

// NewStatic creates the fixed-dataset directory.
// Passwords are held as argon2id digests, never as plaintext.
func NewStatic() *Static {
	accounts := map[string]staticAccount{
		"admin": {
			profile: Profile{
				ID:          "1",
				Username:    "admin",
				Email:       "admin@example.com",
				DisplayName: "Administrator",
				Roles:       []string{"Administrators", "Users"},
			},
			passwordHash: mustHash("password"),
		},
		"user": {
			profile: Profile{
				ID:          "2",
				Username:    "user",
				Email:       "user@example.com",
				DisplayName: "Regular User",
				Roles:       []string{"Users"},
			},
			passwordHash: mustHash("password"),
		},
	}

	return &Static{accounts: accounts}
}

// ValidateCredentials checks the pair against the fixed dataset.
func (d *Static) ValidateCredentials(username, password string) bool {
	account, ok := d.accounts[username]
	if !ok {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, account.passwordHash)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("directory: static password comparison failed")
		return false
	}

	return match
}

// GetUserInfo returns a copy of the canned profile, or nil for unknown accounts.
func (d *Static) GetUserInfo(username string) *Profile {
	account, ok := d.accounts[username]
	if !ok {
		return nil
	}

	profile := account.profile
	profile.Roles = append([]string(nil), account.profile.Roles...)

	return &profile
}

func mustHash(password string) string {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Err(err).Msg("directory: failed to hash static password")
	}

	return hash
}
