// Package cache provides a redis-backed cache keyed by hierarchical
// query keys. Keys are colon-joined segments from coarse to fine
// ("health:payments:production"), so invalidating a prefix drops every
// cached entry underneath it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key builds a hierarchical cache key from its segments
func Key(segments ...string) string {
	return strings.Join(segments, ":")
}

// Cache wraps a redis client with JSON encoding and prefix invalidation
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache. Entries expire after ttl.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetJSON loads the entry under key into v. It reports whether the key
// was present.
func (c *Cache) GetJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v under key
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Invalidate drops every entry whose key starts with the given segments
func (c *Cache) Invalidate(ctx context.Context, segments ...string) error {
	pattern := Key(segments...) + "*"

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to drop cache key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys %s: %w", pattern, err)
	}
	return nil
}
