package config_test

import (
	"testing"

	"github.com/listkeep/listkeep-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jwtSecret is exactly 32 characters, the configured minimum.
const jwtSecret = "0123456789abcdef0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LISTKEEP_DATABASE_URI", "mongodb://localhost:27017")
	t.Setenv("LISTKEEP_AUTH_JWT_SECRET", jwtSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "http://localhost:3000", cfg.Server.CORSAllowedOrigin)
	assert.Equal(t, "listkeep", cfg.Database.Name)
	assert.Equal(t, 30, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 10080, cfg.Auth.RefreshTokenLifetimeMinutes)
	assert.Empty(t, cfg.Auth.APIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LISTKEEP_SERVER_PORT", "9090")
	t.Setenv("LISTKEEP_SERVER_LOG_LEVEL", "debug")
	t.Setenv("LISTKEEP_DATABASE_NAME", "listkeep_test")
	t.Setenv("LISTKEEP_AUTH_API_KEY", "super-secret-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "listkeep_test", cfg.Database.Name)
	assert.Equal(t, "super-secret-key", cfg.Auth.APIKey)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing database URI", func(t *testing.T) {
		t.Setenv("LISTKEEP_AUTH_JWT_SECRET", jwtSecret)

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})

	t.Run("jwt secret too short", func(t *testing.T) {
		t.Setenv("LISTKEEP_DATABASE_URI", "mongodb://localhost:27017")
		t.Setenv("LISTKEEP_AUTH_JWT_SECRET", "short")

		_, err := config.Load()
		require.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("LISTKEEP_SERVER_LOG_LEVEL", "verbose")

		_, err := config.Load()
		require.Error(t, err)
	})

	t.Run("port out of range", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("LISTKEEP_SERVER_PORT", "70000")

		_, err := config.Load()
		require.Error(t, err)
	})
}
