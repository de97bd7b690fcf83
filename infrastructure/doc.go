// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// - cache/memory: in-process cache on patrickmn/go-cache
// - cache/redis: Redis-backed cache on go-redis
// - cache/sqlite: file-backed cache on mattn/go-sqlite3
// - http/standard: net/http client with retries and a logging transport
// - logger/structured: logrus-backed structured logger
//
// Every cache reports a missing key with a cache.miss RuntimeError.
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache(time.Hour)
//	err := cache.Set(ctx, "key", []byte("value"), 15*time.Minute)
//	value, err := cache.Get(ctx, "key")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(30*time.Second, logger)
//	resp, err := client.Get(ctx, "https://example.com/feed.xml")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "debug", Format: "json"})
//	logger.Info("Feed cleaned", map[string]interface{}{
//	    "url":  "https://example.com/feed.xml",
//	    "kept": 12,
//	})
package infrastructure
