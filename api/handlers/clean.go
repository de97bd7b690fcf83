// ABOUTME: Clean and preview handlers for the Huma API
// ABOUTME: Serves cleaned podcast XML and JSON previews of what a clean would do

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"podclean-api/api/dto/mappers"
	"podclean-api/api/dto/requests"
	"podclean-api/api/dto/responses"
	"podclean-api/core/domain"
	"podclean-api/core/errors"
	"podclean-api/pkg/featureflags"
)

// CleanService defines the methods needed from the clean service
type CleanService interface {
	Clean(ctx context.Context, feedURL string) errors.Result[*domain.CleanedFeed]
	Preview(ctx context.Context, feedURL, previous string) errors.Result[*domain.FeedPreview]
}

// CleanHandler handles feed cleaning HTTP requests
type CleanHandler struct {
	service CleanService
}

// NewCleanHandler creates a new clean handler
func NewCleanHandler(service CleanService) *CleanHandler {
	return &CleanHandler{service: service}
}

// RegisterRoutes registers all clean-related routes
func (h *CleanHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "cleanFeed",
		Method:      http.MethodGet,
		Path:        "/api/clean",
		Summary:     "Clean a podcast feed",
		Description: "Fetches a podcast RSS feed and returns it without the episodes that are not unusually long",
		Tags:        []string{"Feeds"},
	}, h.Clean)

	huma.Register(api, huma.Operation{
		OperationID: "generateFeed",
		Method:      http.MethodPost,
		Path:        "/api/generate",
		Summary:     "Preview a podcast feed",
		Description: "Parses a podcast feed and lists which episodes a clean would keep",
		Tags:        []string{"Feeds"},
	}, h.Generate)
}

// CleanInput defines the input for the Clean operation
type CleanInput struct {
	URL string `query:"url" maxLength:"2048" doc:"Podcast feed URL"`
}

// CleanOutput carries the cleaned feed as raw XML
type CleanOutput struct {
	ContentType string `header:"Content-Type"`
	Kept        string `header:"X-Episodes-Kept"`
	Dropped     string `header:"X-Episodes-Dropped"`
	Threshold   string `header:"X-Duration-Threshold"`
	Body        []byte
}

// Clean handles the GET /api/clean endpoint
func (h *CleanHandler) Clean(ctx context.Context, input *CleanInput) (*CleanOutput, error) {
	cleaned, err := errors.ToPair(h.service.Clean(ctx, input.URL))
	if err != nil {
		return nil, toHumaError(err)
	}

	return &CleanOutput{
		ContentType: "application/xml",
		Kept:        strconv.Itoa(cleaned.Kept),
		Dropped:     strconv.Itoa(cleaned.Dropped),
		Threshold:   strconv.FormatFloat(cleaned.Threshold, 'f', 0, 64),
		Body:        cleaned.XML,
	}, nil
}

// GenerateInput defines the input for the Generate operation
type GenerateInput struct {
	Body requests.GenerateRequest
}

// GenerateOutput defines the output for the Generate operation
type GenerateOutput struct {
	Body responses.PreviewResponse
}

// Generate handles the POST /api/generate endpoint
func (h *CleanHandler) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if !featureflags.IsEnabled(ctx, featureflags.PreviewEnabled) {
		return nil, huma.Error503ServiceUnavailable("Feed preview is disabled")
	}

	input.Body.Normalize()
	preview, err := errors.ToPair(h.service.Preview(ctx, input.Body.URL, input.Body.Previous))
	if err != nil {
		return nil, toHumaError(err)
	}

	return &GenerateOutput{Body: *mappers.ToPreviewResponse(preview)}, nil
}
