package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough-for-hmac"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_ISS", "")
	t.Setenv("JWT_AUD", "")
	t.Setenv("JWT_EXPIRY", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "labtrack-api", cfg.JWTIssuer)
	assert.Equal(t, "labtrack-clients", cfg.JWTAudience)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("DB_DSN", "postgres://localhost/labtrack")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_ISS", "custom-issuer")
	t.Setenv("JWT_AUD", "custom-audience")
	t.Setenv("JWT_EXPIRY", "2h")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "postgres://localhost/labtrack", cfg.DSN)
	assert.Equal(t, testSecret, cfg.JWTSecret)
	assert.Equal(t, "custom-issuer", cfg.JWTIssuer)
	assert.Equal(t, "custom-audience", cfg.JWTAudience)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)

	require.NoError(t, cfg.Validate())
}

func TestLoadIgnoresBadExpiry(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Addr:        ":8080",
			DSN:         "postgres://localhost/labtrack",
			JWTSecret:   testSecret,
			JWTIssuer:   "labtrack-api",
			JWTAudience: "labtrack-clients",
			JWTExpiry:   time.Hour,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"missing dsn", func(c *Config) { c.DSN = "" }, "DB_DSN"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, "at least 32"},
		{"empty issuer", func(c *Config) { c.JWTIssuer = "" }, "JWT_ISS"},
		{"empty audience", func(c *Config) { c.JWTAudience = "" }, "JWT_AUD"},
		{"zero expiry", func(c *Config) { c.JWTExpiry = 0 }, "JWT_EXPIRY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}

	require.NoError(t, valid().Validate())
}
