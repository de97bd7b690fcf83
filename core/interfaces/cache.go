// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"time"
)

// Cache defines the interface for cache operations.
// Implementations are the memory, redis and sqlite backends.
//
// Example usage:
//
//	err := cache.Set(ctx, "clean:<hash>", payload, 15*time.Minute)
//
//	data, err := cache.Get(ctx, "clean:<hash>")
//	if errors.IsCacheMiss(err) {
//		// fetch and clean the feed
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// A missing or expired key yields a cache.miss RuntimeError.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
