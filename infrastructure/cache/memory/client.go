// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Provides a process-local cache with TTL support and periodic cleanup

package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"podclean-api/core/errors"
)

// MemoryCache implements the Cache interface using in-memory storage
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache instance. defaultExpiration
// applies to entries stored with a zero TTL; zero or less keeps them forever.
func NewMemoryCache(defaultExpiration time.Duration) *MemoryCache {
	if defaultExpiration <= 0 {
		defaultExpiration = gocache.NoExpiration
	}
	return &MemoryCache{
		items: gocache.New(defaultExpiration, 10*time.Minute),
	}
}

// Get retrieves a copy of a value. Missing and expired keys are cache.miss errors.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := c.items.Get(key)
	if !ok {
		return nil, errors.NewCacheMiss(key)
	}

	stored := value.([]byte)
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a copy of value with the given TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.items.Set(key, valueCopy, ttl)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.items.Delete(key)
	return nil
}

// Len reports the number of stored entries, expired ones included until cleanup.
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}
