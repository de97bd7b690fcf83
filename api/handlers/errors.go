// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts RuntimeErrors to Huma HTTP errors by walking the causal chain

package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"podclean-api/core/clean"
	"podclean-api/core/errors"
)

// toHumaError converts service errors to appropriate Huma HTTP errors. The
// error type is attached as a detail so clients can branch on it.
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	e, ok := errors.FromUnknown(err)
	if !ok {
		return huma.Error500InternalServerError("Internal server error", err)
	}
	detail := &huma.ErrorDetail{
		Message:  e.Message,
		Location: "type",
		Value:    e.Type,
	}

	switch {
	case errors.IsValidation(e):
		return huma.Error400BadRequest(e.Message, detail)

	case errors.IsNotFound(e):
		return huma.Error404NotFound(e.Message, detail)

	case errors.IsExternalAPI(e):
		status, _ := errors.ExternalStatus(e)
		switch {
		case status >= 500:
			return huma.Error503ServiceUnavailable("Feed host is unavailable", detail)
		case status == http.StatusTooManyRequests:
			return huma.Error429TooManyRequests("Rate limited by feed host", detail)
		default:
			return huma.Error502BadGateway(e.Message, detail)
		}

	case errors.HasType(e, clean.TypeTooLarge):
		return huma.Error502BadGateway(e.Message, detail)

	case errors.HasType(e, clean.TypeFetchFailed):
		return huma.Error502BadGateway("Unable to reach feed host", detail)

	case errors.HasTypes(e, clean.TypeParseXML, clean.TypeNotAPodcast, clean.TypePreviewParseFailed):
		return huma.Error422UnprocessableEntity(e.Message, detail)
	}

	return huma.Error500InternalServerError("Internal server error", detail)
}
