package standard

import (
	"net/http"
	"time"

	"podclean-api/core/interfaces"
	"podclean-api/pkg/utils/requestid"
)

// LoggingRoundTripper implements http.RoundTripper with logging
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Logger    interfaces.Logger
}

// RoundTrip logs outgoing HTTP requests
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID := req.Header.Get(requestid.Header)
	if requestID == "" {
		requestID = requestid.From(req.Context())
	}

	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	resp, err := transport.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.Logger.Warn("Outgoing HTTP request failed", map[string]interface{}{
			"request_id": requestID,
			"method":     req.Method,
			"url":        req.URL.String(),
			"duration":   duration.String(),
			"error":      err.Error(),
		})
		return nil, err
	}

	t.Logger.Debug("Outgoing HTTP request", map[string]interface{}{
		"request_id":  requestID,
		"method":      req.Method,
		"url":         req.URL.String(),
		"status":      resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
	})

	return resp, nil
}
