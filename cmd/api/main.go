// ABOUTME: Main entry point for the Podclean API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"podclean-api/api"
	"podclean-api/api/handlers"
	"podclean-api/api/middleware"
	"podclean-api/core/clean"
	"podclean-api/core/errors"
	"podclean-api/core/interfaces"
	"podclean-api/core/severity"
	"podclean-api/core/workers"
	"podclean-api/infrastructure/cache/memory"
	"podclean-api/infrastructure/cache/redis"
	"podclean-api/infrastructure/cache/sqlite"
	stdhttp "podclean-api/infrastructure/http/standard"
	"podclean-api/infrastructure/logger/structured"
	"podclean-api/pkg/config"
	"podclean-api/pkg/errlog"
	"podclean-api/pkg/featureflags"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		// Config failed, so log with defaults before giving up
		fatal(structured.New(structured.Options{}), "Invalid configuration", err)
	}

	logger := structured.New(structured.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	defer logger.Close()
	flags := featureflags.NewEnvManager("")

	logger.Info("Starting Podclean API", map[string]interface{}{
		"port":            cfg.Server.Port,
		"cache_type":      cfg.Cache.Type,
		"stddev_factor":   cfg.Clean.StdDevFactor,
		"log_level":       logger.Level(),
		"feature_flags":   flags.GetAllFlags(),
		"fetch_timeout":   cfg.FetchTimeout().String(),
		"clean_cache_ttl": cfg.CleanCacheTTL().String(),
	})

	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	httpClient := stdhttp.NewStandardHTTPClient(cfg.FetchTimeout(), logger)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	cleanService := clean.NewService(deps, clean.Options{
		StdDevFactor: cfg.Clean.StdDevFactor,
		CacheTTL:     cfg.CleanCacheTTL(),
		MaxFeedBytes: int64(cfg.Clean.MaxFeedBytes),
	})

	refresher := workers.NewRefreshWorker(cleanService, logger, workers.DefaultWorkerConfig())
	refresher.Start()
	defer refresher.Stop()
	cleanService.UseRefreshQueue(refresher)

	apiConfig := api.APIConfig{
		Logger: logger,
		Flags:  flags,
	}
	if flags.IsEnabled(context.Background(), featureflags.RateLimitEnabled) {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.RateWindow())
		defer limiter.Stop()
		apiConfig.Limiter = limiter
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	handlers.NewCleanHandler(cleanService).RegisterRoutes(humaAPI)
	handlers.NewHealthHandler(flags).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.FetchTimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		fatal(logger, "HTTP server error", err)
	}

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// newCache picks the configured backend, falling back to memory when
// redis or sqlite cannot be opened
func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	memoryCache := func() (interfaces.Cache, func()) {
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second), func() {}
	}

	var (
		backend io.Closer
		err     error
	)
	switch cfg.Cache.Type {
	case "redis":
		var c *redis.RedisCache
		if c, err = redis.NewRedisCache(cfg.Cache.Redis); err == nil {
			logger.Info("Using Redis cache", map[string]interface{}{"address": cfg.Cache.Redis.Address})
			backend = c
		}
	case "sqlite":
		var c *sqlite.Client
		if c, err = sqlite.NewSQLiteCache(cfg.Cache.SQLitePath); err == nil {
			logger.Info("Using SQLite cache", map[string]interface{}{"path": cfg.Cache.SQLitePath})
			backend = c
		}
	default:
		return memoryCache()
	}

	if err != nil {
		e := errors.Decorate(err, &errors.RuntimeError{
			Type:     errors.TypeConfig,
			Message:  "Failed to open " + cfg.Cache.Type + " cache, falling back to memory",
			Severity: severity.Warning,
		})
		errlog.Log(logger, "Cache backend unavailable", e)
		return memoryCache()
	}

	return backend.(interfaces.Cache), func() {
		if err := backend.Close(); err != nil {
			logger.Warn("Failed to close cache", map[string]interface{}{"error": err.Error()})
		}
	}
}

func fatal(logger interfaces.Logger, msg string, err error) {
	e, ok := errors.FromUnknown(err)
	if !ok {
		e = errors.Decorate(err, &errors.RuntimeError{Type: errors.TypeConfig, Message: err.Error()})
	}
	errlog.Log(logger, msg, errors.UpdateSeverity(e, severity.Fatal, nil))
	os.Exit(1)
}
