// Package api provides the HTTP layer for the podcast feed cleaner.
// It uses the Huma framework on a chi router for OpenAPI documentation,
// request/response validation, and typed handlers.
//
// # Architecture
//
// - server.go: Huma API configuration and middleware stack
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: request logging, feature flags, rate limiting
//
// The OpenAPI document is served at /openapi.json and the interactive
// docs at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    Flags:      flags,
//	    RateLimit:  60,
//	    RateWindow: time.Minute,
//	})
//	handlers.NewCleanHandler(cleanService).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors follow RFC 7807. Failures from the core carry their dotted type
// as an error detail with location "type":
//
//	{
//	    "status": 502,
//	    "title": "Bad Gateway",
//	    "detail": "Feed host answered 500",
//	    "errors": [{"location": "type", "value": "clean.bad_status"}]
//	}
package api
