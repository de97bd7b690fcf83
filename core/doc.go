// Package core contains the business logic for the podcast feed cleaner.
// It is framework-agnostic and can be used without the HTTP layer.
//
// The core package is organized into several sub-packages:
//
// - severity: ordered error severities
// - result: the Either result type and goroutine-backed promises
// - errors: RuntimeError, chain helpers, and the panic/recover bridge
// - domain: cleaned feeds and previews
// - clean: fetching, duration statistics, and feed filtering
// - workers: background refresh of cached feeds
// - interfaces: contracts for external dependencies (cache, HTTP, logger)
//
// All external dependencies are injected via interfaces. The core never
// logs through a concrete logger and performs I/O only through them.
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	service := clean.NewService(deps, clean.DefaultOptions())
//
//	res := service.Clean(ctx, "https://example.com/podcast.xml")
//	if res.IsError() {
//	    // res.GetError() is a *errors.RuntimeError
//	}
package core
