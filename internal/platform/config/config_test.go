package config_test

import (
	"testing"
	"time"

	"github.com/SscSPs/opahours_backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/opahours")
	t.Setenv("JWT_EXPIRY_DURATION", "")
	t.Setenv("CORS_ORIGIN", "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/opahours", cfg.DatabaseURL)
	assert.Equal(t, "refreshToken", cfg.RefreshTokenCookieName)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://db/primary")
	t.Setenv("DATABASE_URL", "postgres://db/ignored")
	t.Setenv("PORT", "9090")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_EXPIRY_DURATION", "30m")
	t.Setenv("REFRESH_TOKEN_EXPIRY_DURATION", "not-a-duration")
	t.Setenv("CORS_ORIGIN", "https://app.example.com, https://admin.example.com")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://db/primary", cfg.DatabaseURL)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenExpiryDuration)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
}
