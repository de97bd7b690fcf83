// ABOUTME: Configuration management from an optional TOML file and environment variables
// ABOUTME: Defines configuration structures for server, cache, cleaning and logging settings

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"podclean-api/core/errors"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `toml:"server"`

	// Cache contains cache configuration
	Cache CacheConfig `toml:"cache"`

	// Clean contains feed cleaning configuration
	Clean CleanConfig `toml:"clean"`

	// Log contains logger configuration
	Log LogConfig `toml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `toml:"port"`

	// RateLimit is the number of requests allowed per client in RateWindow
	RateLimit int `toml:"rate_limit"`

	// RateWindow is the rate limiting window in seconds
	RateWindow int `toml:"rate_window"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string `toml:"type"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `toml:"redis"`

	// Memory contains in-memory cache configuration
	Memory MemoryConfig `toml:"memory"`

	// SQLitePath is the database file used by the sqlite backend
	SQLitePath string `toml:"sqlite_path"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `toml:"address"`

	// Password is the Redis authentication password
	Password string `toml:"password"`

	// DB is the Redis database number
	DB int `toml:"db"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int `toml:"default_expiration"`
}

// CleanConfig holds feed cleaning settings
type CleanConfig struct {
	// StdDevFactor scales the standard deviation added to the mean duration
	StdDevFactor float64 `toml:"stddev_factor"`

	// CacheTTL is how long cleaned feeds are cached, in seconds
	CacheTTL int `toml:"cache_ttl"`

	// FetchTimeout bounds a single upstream fetch, in seconds
	FetchTimeout int `toml:"fetch_timeout"`

	// MaxFeedBytes caps the size of an upstream feed body
	MaxFeedBytes int `toml:"max_feed_bytes"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`

	// File enables a rotated log file alongside stdout
	File string `toml:"file"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       "8000",
			RateLimit:  60,
			RateWindow: 60,
		},
		Cache: CacheConfig{
			Type: "memory",
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
			Memory: MemoryConfig{
				DefaultExpiration: 3600,
			},
			SQLitePath: "podclean-cache.db",
		},
		Clean: CleanConfig{
			StdDevFactor: 2,
			CacheTTL:     900,
			FetchTimeout: 30,
			MaxFeedBytes: 10 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := Default()
	cfg.applyEnv()
	return cfg, nil
}

// Load reads the TOML file at path over the defaults, then applies the
// environment on top. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Decorate(err, errors.NewConfig("CONFIG_FILE", "cannot read "+path))
		}
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, errors.Decorate(err, errors.NewConfig("CONFIG_FILE", "cannot parse "+path))
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	envString("PORT", &c.Server.Port)
	envInt("RATE_LIMIT", &c.Server.RateLimit)
	envInt("RATE_WINDOW", &c.Server.RateWindow)

	envString("CACHE_TYPE", &c.Cache.Type)
	envString("REDIS_ADDRESS", &c.Cache.Redis.Address)
	envString("REDIS_PASSWORD", &c.Cache.Redis.Password)
	envInt("REDIS_DB", &c.Cache.Redis.DB)
	envInt("MEMORY_CACHE_EXPIRATION", &c.Cache.Memory.DefaultExpiration)
	envString("SQLITE_CACHE_PATH", &c.Cache.SQLitePath)

	envFloat("CLEAN_STDDEV_FACTOR", &c.Clean.StdDevFactor)
	envInt("CLEAN_CACHE_TTL", &c.Clean.CacheTTL)
	envInt("FETCH_TIMEOUT", &c.Clean.FetchTimeout)
	envInt("CLEAN_MAX_FEED_BYTES", &c.Clean.MaxFeedBytes)

	envString("LOG_LEVEL", &c.Log.Level)
	envString("LOG_FORMAT", &c.Log.Format)
	envString("LOG_FILE", &c.Log.File)
}

// CleanCacheTTL returns the cleaned feed TTL as a duration
func (c *Config) CleanCacheTTL() time.Duration {
	return time.Duration(c.Clean.CacheTTL) * time.Second
}

// FetchTimeout returns the upstream fetch timeout as a duration
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Clean.FetchTimeout) * time.Second
}

// RateWindow returns the rate limiting window as a duration
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.Server.RateWindow) * time.Second
}

// envString overwrites dst when key is set
func envString(key string, dst *string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

// envInt overwrites dst when key holds an integer; other values are ignored
func envInt(key string, dst *int) {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			*dst = intValue
		}
	}
}

func envFloat(key string, dst *float64) {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			*dst = f
		}
	}
}

// Validate checks if the configuration is valid. Failures are config.invalid
// RuntimeErrors naming the offending key.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.NewConfig("PORT", "port cannot be empty")
	}

	if c.Server.RateLimit < 1 {
		return errors.NewConfig("RATE_LIMIT", "rate limit must be at least 1")
	}

	if c.Server.RateWindow < 1 {
		return errors.NewConfig("RATE_WINDOW", "rate window must be at least 1 second")
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite":
	default:
		return errors.NewConfig("CACHE_TYPE", "cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.NewConfig("REDIS_ADDRESS", "redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLitePath == "" {
		return errors.NewConfig("SQLITE_CACHE_PATH", "sqlite path cannot be empty when using sqlite cache")
	}

	if c.Clean.StdDevFactor < 0 {
		return errors.NewConfig("CLEAN_STDDEV_FACTOR", "factor cannot be negative")
	}

	if c.Clean.CacheTTL < 0 {
		return errors.NewConfig("CLEAN_CACHE_TTL", "ttl cannot be negative")
	}

	if c.Clean.FetchTimeout < 1 {
		return errors.NewConfig("FETCH_TIMEOUT", "fetch timeout must be at least 1 second")
	}

	if c.Clean.MaxFeedBytes < 1 {
		return errors.NewConfig("CLEAN_MAX_FEED_BYTES", "max feed size must be positive")
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.NewConfig("LOG_FORMAT", "log format must be 'text' or 'json'")
	}

	return nil
}
