// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the marketplace service.
type Config struct {
	Port           string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	MigrationsPath string // empty skips migrations at boot

	OTPTTLMinutes        int // how long an issued handoff code stays valid
	ApprovalTTLHours     int // how long a review request waits before expiring
	SweepIntervalMinutes int // how often the expiry cron fires
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	otpTTL, err := positiveInt("OTP_TTL_MINUTES", 10)
	if err != nil {
		return nil, err
	}
	approvalTTL, err := positiveInt("APPROVAL_TTL_HOURS", 72)
	if err != nil {
		return nil, err
	}
	sweep, err := positiveInt("SWEEP_INTERVAL_MINUTES", 60)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             redisURL,
		JWTSecret:            secret,
		MigrationsPath:       os.Getenv("MIGRATIONS_PATH"),
		OTPTTLMinutes:        otpTTL,
		ApprovalTTLHours:     approvalTTL,
		SweepIntervalMinutes: sweep,
	}, nil
}

func positiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, s)
	}
	return v, nil
}
