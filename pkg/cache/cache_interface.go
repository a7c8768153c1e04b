package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer.
// Implementations: infrastructure/cache.RedisCache, NoopCache
type Cache interface {
	// Get loads a value and unmarshals it into dest.
	// found = false on cache miss, dest is left untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with ttl (0 = no expiry)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the keys
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}

// NoopCache never hits. Used when Redis is unavailable and in tests.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NoopCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (NoopCache) Delete(context.Context, ...string) error { return nil }
func (NoopCache) Ping(context.Context) error              { return nil }
