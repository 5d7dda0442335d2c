package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough-32",
		AccessTokenExpiration: time.Hour,
		Issuer:                "storefront-test",
	})
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.Issue("admin", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := svc.Validate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.IsAdmin())
	assert.NotEmpty(t, claims.ID)
	assert.Greater(t, claims.RemainingTTL(), 59*time.Minute)
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := newTestJWTService()
	a, err := svc.Issue("admin", RoleAdmin)
	require.NoError(t, err)
	b, err := svc.Issue("admin", RoleAdmin)
	require.NoError(t, err)

	ca, err := svc.Validate(a.AccessToken)
	require.NoError(t, err)
	cb, err := svc.Validate(b.AccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestJWTService_Validate_Failures(t *testing.T) {
	svc := newTestJWTService()

	t.Run("expired", func(t *testing.T) {
		past := newTestJWTService()
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Issue("admin", RoleAdmin)
		require.NoError(t, err)

		_, err = svc.Validate(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		future := newTestJWTService()
		future.now = func() time.Time { return time.Now().Add(time.Hour) }
		token, err := future.Issue("admin", RoleAdmin)
		require.NoError(t, err)

		_, err = svc.Validate(token.AccessToken)
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: strings.Repeat("x", 40), AccessTokenExpiration: time.Hour, Issuer: "storefront-test"})
		token, err := other.Issue("admin", RoleAdmin)
		require.NoError(t, err)

		_, err = svc.Validate(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-that-is-long-enough-32", AccessTokenExpiration: time.Hour, Issuer: "elsewhere"})
		token, err := other.Issue("admin", RoleAdmin)
		require.NoError(t, err)

		_, err = svc.Validate(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "admin", ID: "x", Issuer: "storefront-test"}, Role: RoleAdmin}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Validate(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJWTService_MissingSecret(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{AccessTokenExpiration: time.Hour})
	_, err := svc.Issue("admin", RoleAdmin)
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = svc.Validate("x")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestClaims_RemainingTTL(t *testing.T) {
	assert.Zero(t, (&Claims{}).RemainingTTL())
	expired := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}}
	assert.Zero(t, expired.RemainingTTL())
}
