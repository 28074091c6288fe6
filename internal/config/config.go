// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultAddr      = ":8080"
	defaultJWTIssuer = "labtrack-api"
	defaultJWTAud    = "labtrack-clients"
	defaultJWTExpiry = 24 * time.Hour
)

// Config holds all runtime configuration for the API server.
type Config struct {
	Addr string
	DSN  string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTExpiry   time.Duration
}

// Load reads configuration from the environment. Missing optional values
// fall back to defaults; validation happens separately in Validate.
func Load() *Config {
	cfg := &Config{
		Addr:        getEnv("ADDR", defaultAddr),
		DSN:         os.Getenv("DB_DSN"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   getEnv("JWT_ISS", defaultJWTIssuer),
		JWTAudience: getEnv("JWT_AUD", defaultJWTAud),
		JWTExpiry:   defaultJWTExpiry,
	}

	if raw := os.Getenv("JWT_EXPIRY"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.JWTExpiry = d
		}
	}

	return cfg
}

// Validate checks that required configuration is present and sane.
func (c *Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(c.JWTSecret))
	}
	if c.JWTIssuer == "" {
		return fmt.Errorf("JWT_ISS cannot be empty")
	}
	if c.JWTAudience == "" {
		return fmt.Errorf("JWT_AUD cannot be empty")
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive, got %s", c.JWTExpiry)
	}
	return nil
}

// LoadAndValidate loads the configuration and validates it in one step.
func LoadAndValidate() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
