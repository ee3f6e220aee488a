package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusops/api/internal/api/metrics"
)

// ResultCache stores AI generation results keyed by a hash of their prompt,
// so identical requests within the TTL skip the model round-trip. Keys are
// prefixed "aicache:" to keep the keyspace tidy.
type ResultCache struct {
	client *redis.Client
}

// NewResultCache creates a ResultCache wrapping the given Redis client.
func NewResultCache(client *redis.Client) *ResultCache {
	return &ResultCache{client: client}
}

// Get returns the cached value and whether it was present.
func (c *ResultCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	return v, true, nil
}

// Set stores a value with the given TTL.
func (c *ResultCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *ResultCache) key(key string) string {
	return "aicache:" + key
}
