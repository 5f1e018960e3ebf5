package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MemorialTransportation/web-backend/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_URL", "SESSION_SECRET", "SESSION_TTL", "SECURE_COOKIES",
		"LOG_LEVEL", "ALLOWED_ORIGINS", "LOGIN_RATE_PER_MINUTE", "LOGIN_BURST", "COMPANY_PROFILE", "TRUSTED_PROXIES",
	} {
		// Register restore, then unset: envconfig treats an empty value as set.
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_DemoModeDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.DemoModeEnabled)
	assert.True(t, cfg.GeneratedSecret)
	assert.Len(t, cfg.SessionSecret, 2*config.MinSessionSecretLen)
	assert.Equal(t, "5050", cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.LoginRatePerMinute)
	assert.Equal(t, 5, cfg.LoginBurst)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "0.0.0.0:5050", cfg.Addr())
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_DatabaseDisablesDemoMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/memorial")
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.DemoModeEnabled)
	assert.False(t, cfg.GeneratedSecret)
	assert.Equal(t, testSecret, cfg.SessionSecret)
}

func TestLoad_WhitespaceDatabaseURLIsDemoMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "   ")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.DemoModeEnabled)
}

func TestLoad_DatabaseRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/memorial")
	t.Setenv("SESSION_SECRET", "short")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrMissingSessionSecret)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://memorialtransportation.com")
	t.Setenv("LOGIN_RATE_PER_MINUTE", "3")
	t.Setenv("LOGIN_BURST", "1")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, []string{"https://memorialtransportation.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 3, cfg.LoginRatePerMinute)
	assert.Equal(t, 1, cfg.LoginBurst)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, cfg.TrustedProxies)
}

func TestValidate(t *testing.T) {
	base := config.Config{
		SessionSecret:      testSecret,
		SessionTTL:         time.Hour,
		LoginRatePerMinute: 10,
		LoginBurst:         5,
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr error
	}{
		{"valid", func(c *config.Config) {}, nil},
		{"zero ttl", func(c *config.Config) { c.SessionTTL = 0 }, config.ErrInvalidSessionTTL},
		{"zero rate", func(c *config.Config) { c.LoginRatePerMinute = 0 }, config.ErrInvalidLoginRate},
		{"zero burst", func(c *config.Config) { c.LoginBurst = 0 }, config.ErrInvalidLoginRate},
		{"short secret", func(c *config.Config) { c.SessionSecret = "x" }, config.ErrMissingSessionSecret},
		{"short secret in demo mode", func(c *config.Config) {
			c.SessionSecret = "x"
			c.DemoModeEnabled = true
		}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
