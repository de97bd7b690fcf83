package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podclean-api/core/errors"
	"podclean-api/pkg/config"
)

// Integration tests run only when REDIS_TEST_ADDRESS points at a live server.
func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("Skipping Redis integration tests - set REDIS_TEST_ADDRESS to run")
	}

	cache, err := NewRedisCache(config.RedisConfig{Address: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestNewRedisCache_EmptyAddress(t *testing.T) {
	cache, err := NewRedisCache(config.RedisConfig{})

	assert.Nil(t, cache)
	assert.True(t, errors.HasType(err, errors.TypeConfig))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	cache, err := NewRedisCache(config.RedisConfig{Address: "127.0.0.1:1"})

	assert.Nil(t, cache)
	assert.Error(t, err)
}

func TestRedisCache_RoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "podclean:test", []byte("value"), time.Minute))

	got, err := cache.Get(ctx, "podclean:test")
	require.NoError(t, err)
	assert.Equal(t, "value", string(got))

	require.NoError(t, cache.Delete(ctx, "podclean:test"))

	_, err = cache.Get(ctx, "podclean:test")
	assert.True(t, errors.IsCacheMiss(err))
}

func TestRedisCache_Expiry(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "podclean:short", []byte("v"), 50*time.Millisecond))
	time.Sleep(100 * time.Millisecond)

	_, err := cache.Get(ctx, "podclean:short")
	assert.True(t, errors.IsCacheMiss(err))
}
