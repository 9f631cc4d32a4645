package config

import "time"

// ServerConfig holds the HTTP planning API configuration.
type ServerConfig struct {
	// Listen address (host:port)
	Address string `mapstructure:"address" validate:"required"`

	// Per-request handling timeout
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"required"`

	// Rate limiting for plan runs
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// Prometheus exposure
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// RateLimitConfig holds token-bucket rate limiting configuration.
type RateLimitConfig struct {
	// Maximum plan runs per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}
