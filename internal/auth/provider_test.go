package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStaticTokenProvider(t *testing.T) {
	p := NewStaticTokenProvider("api-key-123")

	token, err := p.Token(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "api-key-123", token)
}

func TestStaticTokenProvider_Empty(t *testing.T) {
	p := NewStaticTokenProvider("")

	_, err := p.Token(context.Background())

	assert.ErrorIs(t, err, ErrNoToken)
}

func TestJWTProvider_CachesUntilExpiry(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	fresh := signedToken(t, now.Add(time.Hour))

	refreshCalls := 0
	p := NewJWTProvider(func(ctx context.Context) (string, error) {
		refreshCalls++
		return fresh, nil
	}, 30*time.Second)
	p.now = func() time.Time { return now }

	first, err := p.Token(context.Background())
	require.NoError(t, err)
	second, err := p.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fresh, first)
	assert.Equal(t, fresh, second)
	assert.Equal(t, 1, refreshCalls, "second call should hit the cache")
}

func TestJWTProvider_RefreshesNearExpiry(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	shortLived := signedToken(t, now.Add(10*time.Second))
	renewed := signedToken(t, now.Add(time.Hour))

	tokens := []string{shortLived, renewed}
	refreshCalls := 0
	p := NewJWTProvider(func(ctx context.Context) (string, error) {
		token := tokens[refreshCalls]
		refreshCalls++
		return token, nil
	}, 30*time.Second)
	p.now = func() time.Time { return now }

	first, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, shortLived, first)

	// Token expires within the 30s leeway, so the next call refreshes.
	second, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, renewed, second)
	assert.Equal(t, 2, refreshCalls)
}

func TestJWTProvider_RefreshFailure(t *testing.T) {
	p := NewJWTProvider(func(ctx context.Context) (string, error) {
		return "", errors.New("login endpoint down")
	}, 30*time.Second)

	_, err := p.Token(context.Background())

	assert.Error(t, err)
}

func TestJWTProvider_TokenWithoutExp(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	p := NewJWTProvider(func(ctx context.Context) (string, error) {
		return signed, nil
	}, 30*time.Second)

	_, err = p.Token(context.Background())

	assert.Error(t, err)
}
