package clean

import (
	"fmt"
	"net/http"

	"podclean-api/core/errors"
	"podclean-api/core/severity"
)

// Error types reported by the service.
const (
	TypeNoURL       = "clean.no_url"
	TypeInvalidURL  = "clean.invalid_url"
	TypeFetchFailed = "clean.fetch_failed"
	TypeBadStatus   = "clean.bad_status"
	TypeTooLarge    = "clean.feed_too_large"
	TypeParseXML    = "clean.parse_xml"
	TypeNotAPodcast = "clean.not_a_podcast"

	TypePreviewNoURL       = "generate_rss.no_url"
	TypePreviewInvalidURL  = "generate_rss.invalid_url"
	TypePreviewParseFailed = "generate_rss.parse_failed"
)

// upstreamFailure matches errors caused by the feed host rather than the caller.
var upstreamFailure = errors.TypeChecker(errors.TypeExternalAPI, TypeFetchFailed, TypeTooLarge)

// callerFailure matches errors caused by bad input.
var callerFailure = errors.TypeChecker(errors.TypeValidation)

func noURL(errType string) *errors.RuntimeError {
	return errors.Decorate(errors.NewValidation("url", "is required"), &errors.RuntimeError{
		Type:    errType,
		Message: "No feed URL given",
	})
}

func invalidURL(errType, raw, reason string) *errors.RuntimeError {
	return errors.Decorate(errors.NewValidation("url", reason), &errors.RuntimeError{
		Type:    errType,
		Message: fmt.Sprintf("Invalid feed URL: %s", raw),
		Payload: map[string]any{"url": raw},
	})
}

func fetchFailed(feedURL string, cause error) *errors.RuntimeError {
	return errors.Decorate(cause, &errors.RuntimeError{
		Type:     TypeFetchFailed,
		Message:  "Unable to fetch feed",
		Severity: severity.Warning,
		Payload:  map[string]any{"url": feedURL},
	})
}

func feedTooLarge(feedURL string, limit int64) *errors.RuntimeError {
	return &errors.RuntimeError{
		Type:     TypeTooLarge,
		Message:  fmt.Sprintf("Feed is larger than %d bytes", limit),
		Severity: severity.Warning,
		Payload:  map[string]any{"url": feedURL, "limit": limit},
	}
}

func badStatus(feedURL string, status int) *errors.RuntimeError {
	return errors.Decorate(errors.NewExternalAPI("feed", status, http.StatusText(status)), &errors.RuntimeError{
		Type:    TypeBadStatus,
		Message: fmt.Sprintf("Feed host answered %d", status),
		Payload: map[string]any{"url": feedURL, "status": status},
	})
}
