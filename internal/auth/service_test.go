package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskwatch/riskwatch/internal/directory"
	"github.com/riskwatch/riskwatch/internal/token"
)

// fakeDirectory tracks which adapter operations were reached.
type fakeDirectory struct {
	validateResult bool
	profile        *directory.Profile

	validateCalls int
	lookupCalls   int
}

func (f *fakeDirectory) ValidateCredentials(_, _ string) bool {
	f.validateCalls++
	return f.validateResult
}

func (f *fakeDirectory) GetUserInfo(_ string) *directory.Profile {
	f.lookupCalls++
	return f.profile
}

func testTokenIssuer() *token.Issuer {
	return token.NewIssuer([]byte("test-key"), "riskwatch", "riskwatch-clients", 8*time.Hour)
}

func TestLogin_MissingCredentialsNeverReachDirectory(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"both empty", "", ""},
		{"empty username", "", "password"},
		{"empty password", "admin", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := &fakeDirectory{}
			s := NewService(dir, testTokenIssuer())

			result, err := s.Login(tt.username, tt.password)
			assert.ErrorIs(t, err, ErrMissingCredentials)
			assert.Nil(t, result)
			assert.Zero(t, dir.validateCalls)
			assert.Zero(t, dir.lookupCalls)
		})
	}
}

func TestLogin_RejectedCredentialsSkipLookup(t *testing.T) {
	dir := &fakeDirectory{validateResult: false}
	s := NewService(dir, testTokenIssuer())

	result, err := s.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, result)
	assert.Equal(t, 1, dir.validateCalls)
	assert.Zero(t, dir.lookupCalls)
}

func TestLogin_ProfileNotFound(t *testing.T) {
	dir := &fakeDirectory{validateResult: true, profile: nil}
	s := NewService(dir, testTokenIssuer())

	result, err := s.Login("ghost", "password")
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Nil(t, result)
	assert.Equal(t, 1, dir.lookupCalls)
}

func TestLogin_Success(t *testing.T) {
	issuer := testTokenIssuer()
	dir := &fakeDirectory{
		validateResult: true,
		profile: &directory.Profile{
			ID:       "1",
			Username: "admin",
			Roles:    []string{"Administrators", "Users"},
		},
	}
	s := NewService(dir, issuer)

	result, err := s.Login("admin", "password")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "admin", result.User.Username)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), result.Expiration, time.Minute)

	claims, err := issuer.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.ElementsMatch(t, []string{"Administrators", "Users"}, claims.Roles)
}
