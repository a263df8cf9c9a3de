package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listkeep/listkeep-api/internal/config"
	"github.com/listkeep/listkeep-api/internal/service/auth"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes:        30,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		svc, err := auth.NewJWTService(testAuthConfig())
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("secret too short", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.JWTSecret = "short"
		_, err := auth.NewJWTService(cfg)
		assert.Error(t, err)
	})
}

func TestJWTServiceRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, err := auth.NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()

	t.Run("access token round trip", func(t *testing.T) {
		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, auth.TokenTypeAccess, claims.TokenType)
		assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt, time.Minute)
	})

	t.Run("refresh token round trip", func(t *testing.T) {
		token, err := svc.GenerateRefreshToken(ctx, userID)
		require.NoError(t, err)

		claims, err := svc.ValidateRefreshToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, auth.TokenTypeRefresh, claims.TokenType)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		token, err := svc.GenerateRefreshToken(ctx, userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrWrongTokenType)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)

		_, err = svc.ValidateRefreshToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrWrongTokenType)
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("token signed with a different key is invalid", func(t *testing.T) {
		otherCfg := testAuthConfig()
		otherCfg.JWTSecret = "ffffffffffffffffffffffffffffffff"
		other, err := auth.NewJWTService(otherCfg)
		require.NoError(t, err)

		token, err := other.GenerateToken(ctx, userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := auth.NewBcryptHasher()

	hashed, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)

	assert.NoError(t, hasher.Compare(hashed, "secret123"))
	assert.Error(t, hasher.Compare(hashed, "wrong-password"))
}
