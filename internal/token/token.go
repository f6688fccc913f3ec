// Package token issues and verifies the signed bearer tokens that carry
// identity and role claims between login and the protected routes.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/riskwatch/riskwatch/internal/directory"
)

// Claims is the only claim shape this service issues or accepts.
// Roles carries the full directory role set; clients derive their own
// simplified single-role view from it.
type Claims struct {
	jwt.RegisteredClaims

	UserID      string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"name"`
	Roles       []string `json:"roles"`
}

// HasAnyRole reports whether the claim role set intersects the given set.
func (c *Claims) HasAnyRole(roles ...string) bool {
	for _, required := range roles {
		for _, have := range c.Roles {
			if required == have {
				return true
			}
		}
	}

	return false
}

// Issuer signs and verifies bearer tokens with a symmetric key.
type Issuer struct {
	key      []byte
	issuer   string
	audience string
	expiry   time.Duration
}

// NewIssuer creates a token issuer. Issuer and audience are echoed
// verbatim into every token and required to match on verification.
func NewIssuer(key []byte, issuer, audience string, expiry time.Duration) *Issuer {
	return &Issuer{
		key:      key,
		issuer:   issuer,
		audience: audience,
		expiry:   expiry,
	}
}

// Issue produces a signed token for the given profile.
// The jti claim is freshly random per call; expiry is issuance time plus
// the configured lifetime.
func (i *Issuer) Issue(profile *directory.Profile) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(i.expiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.Username,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
		UserID:      profile.ID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		Roles:       append([]string(nil), profile.Roles...),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expires, nil
}

// Verify parses the raw token and checks signature, method, expiry,
// issuer and audience. A token is valid iff all of them hold.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := new(Claims)

	_, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(*jwt.Token) (interface{}, error) { return i.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	return claims, nil
}
