// ABOUTME: Shared error categories for the service and their constructors
// ABOUTME: Predicates walk the causal chain, so wrapping never hides a category

package errors

import (
	"fmt"

	"podclean-api/core/severity"
)

const (
	TypeValidation  = "core.validation"
	TypeNotFound    = "core.not_found"
	TypeExternalAPI = "core.external_api"
	TypeCacheMiss   = "cache.miss"
	TypeConfig      = "config.invalid"
)

// NewValidation reports invalid input on a named field.
func NewValidation(field, message string) *RuntimeError {
	return &RuntimeError{
		Type:     TypeValidation,
		Message:  fmt.Sprintf("validation error on field '%s': %s", field, message),
		Severity: severity.Info,
		Payload:  map[string]any{"field": field},
	}
}

// NewNotFound reports a missing resource.
func NewNotFound(resource, id string) *RuntimeError {
	return &RuntimeError{
		Type:    TypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
		Payload: map[string]any{"resource": resource, "id": id},
	}
}

// NewExternalAPI reports an unexpected answer from an upstream service.
func NewExternalAPI(api string, statusCode int, message string) *RuntimeError {
	return &RuntimeError{
		Type:     TypeExternalAPI,
		Message:  fmt.Sprintf("external API error from %s: %d - %s", api, statusCode, message),
		Severity: severity.Warning,
		Payload:  map[string]any{"api": api, "status": statusCode},
	}
}

// NewCacheMiss reports a key absent from a cache backend.
func NewCacheMiss(key string) *RuntimeError {
	return &RuntimeError{
		Type:     TypeCacheMiss,
		Message:  "key not found",
		Severity: severity.Debug,
		Payload:  map[string]any{"key": key},
	}
}

// NewConfig reports an invalid configuration value.
func NewConfig(key, message string) *RuntimeError {
	return &RuntimeError{
		Type:     TypeConfig,
		Message:  fmt.Sprintf("%s: %s", key, message),
		Severity: severity.Fatal,
		Payload:  map[string]any{"key": key},
	}
}

// IsValidation checks whether x was caused by invalid input.
func IsValidation(x any) bool { return HasType(x, TypeValidation) }

// IsNotFound checks whether x was caused by a missing resource.
func IsNotFound(x any) bool { return HasType(x, TypeNotFound) }

// IsExternalAPI checks whether x was caused by an upstream service.
func IsExternalAPI(x any) bool { return HasType(x, TypeExternalAPI) }

// IsCacheMiss checks whether x is a cache miss.
func IsCacheMiss(x any) bool { return HasType(x, TypeCacheMiss) }

// ExternalStatus returns the upstream status code recorded in the chain of x.
func ExternalStatus(x any) (int, bool) {
	e, ok := Find(x, TypeExternalAPI)
	if !ok {
		return 0, false
	}
	switch status := e.Payload["status"].(type) {
	case int:
		return status, true
	case float64:
		// decoded from JSON
		return int(status), true
	default:
		return 0, false
	}
}
