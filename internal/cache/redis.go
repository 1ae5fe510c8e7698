package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces clipmark entries in a shared Redis.
const keyPrefix = "clipmark:"

// Redis is a Cache backed by a Redis (or Valkey) server.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect opens a Redis client and verifies it with PING.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	slog.Info("redis connected", "addr", addr)
	return client, nil
}

// NewRedis creates a Redis cache storing values for ttl.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get returns the cached value. Errors are logged and reported as misses.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores val with the configured TTL. Errors are logged.
func (r *Redis) Set(ctx context.Context, key string, val []byte) {
	if err := r.client.Set(ctx, keyPrefix+key, val, r.ttl).Err(); err != nil {
		slog.Warn("cache set error", "key", key, "error", err)
	}
}

// Close releases the client's connections.
func (r *Redis) Close() error {
	return r.client.Close()
}
