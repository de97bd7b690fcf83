package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"podclean-api/api/dto/responses"
	"podclean-api/pkg/featureflags"
)

// HealthHandler reports liveness and feature flag states
type HealthHandler struct {
	flags featureflags.Manager
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(flags featureflags.Manager) *HealthHandler {
	return &HealthHandler{flags: flags}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles the GET /healthz endpoint
func (h *HealthHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	features := map[string]bool{}
	if h.flags != nil {
		for flag, enabled := range h.flags.GetAllFlags() {
			features[string(flag)] = enabled
		}
	}
	return &HealthOutput{Body: responses.HealthResponse{
		Status:   "ok",
		Time:     time.Now().UTC(),
		Features: features,
	}}, nil
}
