package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mergington/activities/internal/log"
)

const DefaultExpiration = 30 * time.Second
const DefaultCleanupInterval = 5 * time.Minute

// NewInMemory initializes the in-memory cache backed by go-cache
func NewInMemory[K ~string, V any](defaultExpiration, cleanupInterval time.Duration) *InMemory[K, V] {
	return &InMemory[K, V]{
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// InMemory is the concrete implementation of the Manager interface
type InMemory[K ~string, V any] struct {
	cache *gocache.Cache
}

// Get retrieves an item from the cache by its key
func (c *InMemory[K, V]) Get(ctx context.Context, key K) (V, bool) {
	var zeroValue V

	value, found := c.cache.Get(string(key))
	if !found {
		return zeroValue, false
	}

	// Type assertion check to ensure the type is correct
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "key", key)

		return zeroValue, false
	}

	log.Debug(log.CatCache, "cache hit", "key", key)

	return v, true
}

// Set sets a value in the cache with a key and TTL
func (c *InMemory[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

// Flush removes every value from the cache
func (c *InMemory[K, V]) Flush(ctx context.Context) error {
	c.cache.Flush()

	return nil
}
