package auth

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/riskwatch/riskwatch/internal/directory"
	"github.com/riskwatch/riskwatch/internal/token"
)

// Service composes the directory adapter and the token issuer into the
// login contract.
type Service struct {
	dir    directory.Directory
	issuer *token.Issuer
}

// NewService creates a new auth service.
func NewService(dir directory.Directory, issuer *token.Issuer) *Service {
	return &Service{dir: dir, issuer: issuer}
}

// Result is a successful login outcome.
type Result struct {
	Token      string             `json:"token"`
	User       *directory.Profile `json:"user"`
	Expiration time.Time          `json:"expiration"`
}

// Login runs one login attempt to its terminal outcome.
//
// Outcomes, in evaluation order:
//  1. empty username or password → ErrMissingCredentials, no directory call
//  2. directory validation fails → ErrInvalidCredentials, no profile lookup
//  3. profile lookup absent → ErrProfileNotFound
//  4. success → token issued, result returned
func (s *Service) Login(username, password string) (*Result, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if !s.dir.ValidateCredentials(username, password) {
		return nil, ErrInvalidCredentials
	}

	profile := s.dir.GetUserInfo(username)
	if profile == nil {
		// credentials validated but no profile resolves
		log.Warn().Str("username", username).Msg("auth: profile lookup failed after valid credentials")
		return nil, ErrProfileNotFound
	}

	signed, expires, err := s.issuer.Issue(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &Result{
		Token:      signed,
		User:       profile,
		Expiration: expires,
	}, nil
}
