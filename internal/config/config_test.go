package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{
			"CLIPMARK_HOST", "CLIPMARK_PORT", "CLIPMARK_LOG_LEVEL", "CLIPMARK_LOG_FORMAT",
			"CLIPMARK_REDIS_ADDR", "CLIPMARK_REDIS_PASSWORD", "CLIPMARK_CACHE_TTL", "CLIPMARK_MAX_BODY",
		} {
			t.Setenv(key, "")
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Addr() != "0.0.0.0:8080" {
			t.Fatalf("expected 0.0.0.0:8080, got: %s", cfg.Addr())
		}
		if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
			t.Fatalf("unexpected logging defaults: %s %s", cfg.LogLevel, cfg.LogFormat)
		}
		if cfg.RedisAddr != "" || cfg.CacheTTL != 10*time.Minute || cfg.MaxBody != 4<<20 {
			t.Fatalf("unexpected cache defaults: %+v", cfg)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("CLIPMARK_HOST", "127.0.0.1")
		t.Setenv("CLIPMARK_PORT", "9000")
		t.Setenv("CLIPMARK_REDIS_ADDR", "localhost:6379")
		t.Setenv("CLIPMARK_CACHE_TTL", "90s")
		t.Setenv("CLIPMARK_MAX_BODY", "1024")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Addr() != "127.0.0.1:9000" || cfg.RedisAddr != "localhost:6379" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
		if cfg.CacheTTL != 90*time.Second || cfg.MaxBody != 1024 {
			t.Fatalf("unexpected limits: %s %d", cfg.CacheTTL, cfg.MaxBody)
		}
	})

	t.Run("malformed values are errors", func(t *testing.T) {
		tests := []struct {
			key, value, want string
		}{
			{"CLIPMARK_CACHE_TTL", "soon", "CLIPMARK_CACHE_TTL"},
			{"CLIPMARK_CACHE_TTL", "-1m", "must be positive"},
			{"CLIPMARK_MAX_BODY", "4MB", "CLIPMARK_MAX_BODY"},
			{"CLIPMARK_MAX_BODY", "0", "must be positive"},
		}
		for _, tt := range tests {
			t.Setenv("CLIPMARK_CACHE_TTL", "")
			t.Setenv("CLIPMARK_MAX_BODY", "")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("%s=%s: expected error containing %q, got: %v", tt.key, tt.value, tt.want, err)
			}
		}
	})
}
