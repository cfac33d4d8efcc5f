// Package auth supplies bearer tokens for marketplace API requests.
// The fetch adapter asks a TokenProvider for a token before each request;
// providers decide whether the cached token is still usable or a new one
// must be obtained.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken indicates that no usable token is available and none could
// be obtained.
var ErrNoToken = errors.New("no token available")

// TokenProvider supplies a bearer token for an outgoing request.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenProvider returns a fixed token. Useful for API keys and tests.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider that always returns token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// Token returns the configured token.
func (p *StaticTokenProvider) Token(ctx context.Context) (string, error) {
	if p.token == "" {
		return "", ErrNoToken
	}
	return p.token, nil
}

// RefreshFunc obtains a fresh JWT, typically from a login or token-refresh
// endpoint.
type RefreshFunc func(ctx context.Context) (string, error)

// JWTProvider caches a JWT and refreshes it before expiry. The token's
// expiry is read from its exp claim without signature verification; the
// client only needs to know when the backend will stop accepting the token,
// verification is the backend's job.
type JWTProvider struct {
	refresh RefreshFunc
	leeway  time.Duration

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	now func() time.Time
}

// NewJWTProvider creates a provider that refreshes via refresh when the
// cached token is within leeway of its expiry. A leeway of 30 seconds is
// reasonable for request-time use.
func NewJWTProvider(refresh RefreshFunc, leeway time.Duration) *JWTProvider {
	return &JWTProvider{
		refresh: refresh,
		leeway:  leeway,
		now:     time.Now,
	}
}

// Token returns the cached token, refreshing it first if it is missing or
// about to expire.
func (p *JWTProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.now().Add(p.leeway).Before(p.expiresAt) {
		return p.token, nil
	}

	token, err := p.refresh(ctx)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}

	expiresAt, err := tokenExpiry(token)
	if err != nil {
		return "", fmt.Errorf("inspect token: %w", err)
	}

	p.token = token
	p.expiresAt = expiresAt
	return p.token, nil
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature.
func tokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse JWT: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}

	return exp.Time, nil
}
