// ABOUTME: Request ID propagation through contexts
// ABOUTME: Shared by the inbound logging middleware and the outbound HTTP transport

package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header carries the request ID on inbound responses and outbound requests.
const Header = "X-Request-ID"

type contextKey struct{}

// New returns a fresh request ID.
func New() string {
	return uuid.New().String()
}

// With stores id in ctx.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// From returns the request ID stored in ctx, or "".
func From(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
