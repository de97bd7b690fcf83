package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podclean-api/core/errors"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "feed", []byte("<rss/>"), time.Hour))

	got, err := cache.Get(ctx, "feed")
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", string(got))
}

func TestMemoryCache_MissIsTyped(t *testing.T) {
	cache := NewMemoryCache(time.Hour)

	got, err := cache.Get(context.Background(), "absent")
	assert.Nil(t, got)
	assert.True(t, errors.IsCacheMiss(err))
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := cache.Get(ctx, "short")
	assert.True(t, errors.IsCacheMiss(err))
}

func TestMemoryCache_ZeroTTLUsesDefault(t *testing.T) {
	cache := NewMemoryCache(0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "forever", []byte("v"), 0))
	time.Sleep(10 * time.Millisecond)

	got, err := cache.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	ctx := context.Background()

	original := []byte("abc")
	require.NoError(t, cache.Set(ctx, "k", original, time.Hour))
	original[0] = 'x'

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _ := cache.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Hour))
	require.NoError(t, cache.Delete(ctx, "k"))
	require.NoError(t, cache.Delete(ctx, "never-set"))

	_, err := cache.Get(ctx, "k")
	assert.True(t, errors.IsCacheMiss(err))
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, cache.Set(ctx, "k", []byte("v"), time.Hour), context.Canceled)
	assert.ErrorIs(t, cache.Delete(ctx, "k"), context.Canceled)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%5)
			_ = cache.Set(ctx, key, []byte(key), time.Hour)
			_, _ = cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, cache.Len())
}
