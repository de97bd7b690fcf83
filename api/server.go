// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"podclean-api/api/middleware"
	"podclean-api/core/interfaces"
	"podclean-api/pkg/featureflags"
	"podclean-api/pkg/utils/requestid"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	Flags      featureflags.Manager
	RateLimit  int           // requests per window
	RateWindow time.Duration // rate limit window

	// Limiter overrides RateLimit/RateWindow so the caller can Stop it
	Limiter *middleware.RateLimiter
}

// compressibleTypes are gzipped when the client accepts it
var compressibleTypes = []string{
	"application/xml",
	"application/rss+xml",
	"application/json",
	"application/problem+json",
}

func corsOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestid.Header},
		ExposedHeaders: []string{
			requestid.Header,
			"X-Episodes-Kept",
			"X-Episodes-Dropped",
			"X-Duration-Threshold",
			"Retry-After",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	}
}

func humaConfig() huma.Config {
	config := huma.DefaultConfig("Podclean API", "1.0.0")
	config.Info.Description = "Removes short trailers and bonus clips from podcast feeds by episode duration"
	return config
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(cors.Handler(corsOptions()))

	// OpenAPI is served at /openapi.json and the docs UI at /docs
	return humachi.New(router, humaConfig()), router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS first so preflight requests skip logging and limits
	router.Use(cors.Handler(corsOptions()))
	router.Use(chimw.Compress(5, compressibleTypes...))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.Flags != nil {
		router.Use(middleware.FeatureFlagsMiddleware(cfg.Flags))
	}

	limiter := cfg.Limiter
	if limiter == nil && cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}
	if limiter != nil {
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	return humachi.New(router, humaConfig()), router
}
