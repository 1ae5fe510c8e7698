// Package config handles configuration loading from environment variables.
// Command-line flags override the values loaded here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	Host    string
	Port    string
	MaxBody int64 // largest accepted request body in bytes

	// Logging
	LogLevel  string // "debug", "info", "warn", "error"
	LogFormat string // "text" or "json"

	// Redis conversion cache; an empty address selects the in-memory cache.
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration
}

// Load reads configuration from environment variables, applying defaults.
// Malformed numbers or durations are errors.
func Load() (*Config, error) {
	cfg := &Config{
		Host:          envOrDefault("CLIPMARK_HOST", "0.0.0.0"),
		Port:          envOrDefault("CLIPMARK_PORT", "8080"),
		LogLevel:      envOrDefault("CLIPMARK_LOG_LEVEL", "info"),
		LogFormat:     envOrDefault("CLIPMARK_LOG_FORMAT", "text"),
		RedisAddr:     os.Getenv("CLIPMARK_REDIS_ADDR"),
		RedisPassword: os.Getenv("CLIPMARK_REDIS_PASSWORD"),
	}

	ttl, err := time.ParseDuration(envOrDefault("CLIPMARK_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("parsing CLIPMARK_CACHE_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("CLIPMARK_CACHE_TTL must be positive, got %s", ttl)
	}
	cfg.CacheTTL = ttl

	maxBody, err := strconv.ParseInt(envOrDefault("CLIPMARK_MAX_BODY", "4194304"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing CLIPMARK_MAX_BODY: %w", err)
	}
	if maxBody <= 0 {
		return nil, fmt.Errorf("CLIPMARK_MAX_BODY must be positive, got %d", maxBody)
	}
	cfg.MaxBody = maxBody

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
