package server

import (
	"time"

	"golang.org/x/time/rate"
)

// Config holds server configuration.
type Config struct {
	Address string
	Port    int

	// Rate limiting applied to /api routes
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// AllowedOrigins for CORS; empty allows all.
	AllowedOrigins []string
}

// DefaultConfig returns the defaults used when no overrides are given.
func DefaultConfig() *Config {
	return &Config{
		Port:            3000,
		RateLimit:       100,
		RateLimitBurst:  200,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}
