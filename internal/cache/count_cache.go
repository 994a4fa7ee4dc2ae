// Package cache provides a best-effort Redis cache for count queries. Every
// successful mutation bumps a per-resource generation counter, which rotates
// the key namespace and implicitly invalidates stale entries. A missing or
// unreachable Redis degrades to direct database counts.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CountCache caches serialized count responses per resource.
type CountCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCountCache wraps a redis client. A nil client yields a disabled cache.
func NewCountCache(client *redis.Client, ttl time.Duration) *CountCache {
	return &CountCache{client: client, ttl: ttl}
}

// Get returns a cached count response for the resource/key pair.
func (c *CountCache) Get(ctx context.Context, resource, key string) (map[string]any, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.entryKey(ctx, resource, key)).Result()
	if err != nil {
		return nil, false
	}
	var value map[string]any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false
	}
	return value, true
}

// Set stores a count response under the resource's current generation.
func (c *CountCache) Set(ctx context.Context, resource, key string, value map[string]any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.entryKey(ctx, resource, key), raw, c.ttl).Err()
}

// Invalidate bumps the resource generation, orphaning all cached entries.
func (c *CountCache) Invalidate(ctx context.Context, resource string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Incr(ctx, generationKey(resource)).Err()
}

func (c *CountCache) entryKey(ctx context.Context, resource, key string) string {
	gen, err := c.client.Get(ctx, generationKey(resource)).Int64()
	if err != nil {
		gen = 0
	}
	return fmt.Sprintf("count:%s:%d:%s", resource, gen, key)
}

func generationKey(resource string) string {
	return "count-gen:" + resource
}
