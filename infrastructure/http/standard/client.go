// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Fetches feeds with exponential backoff and logs every outgoing request

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"podclean-api/core/interfaces"
	"podclean-api/pkg/utils/requestid"
)

const (
	maxRetries = 3
	userAgent  = "PodcleanAPI/1.0"
)

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client  *http.Client
	backoff time.Duration
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout.
// A non-nil logger receives one debug entry per outgoing request.
func NewStandardHTTPClient(timeout time.Duration, logger interfaces.Logger) *StandardHTTPClient {
	var transport http.RoundTripper = http.DefaultTransport
	if logger != nil {
		transport = &LoggingRoundTripper{Transport: transport, Logger: logger}
	}
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		backoff: 100 * time.Millisecond,
	}
}

// Get performs an HTTP GET request, retrying transport failures and 5xx answers
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms
			backoff := c.backoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.8")
		if id := requestid.From(ctx); id != "" {
			req.Header.Set(requestid.Header, id)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		// Don't retry on success or 4xx errors, and hand the last 5xx back
		if resp.StatusCode < 500 || attempt == maxRetries-1 {
			return &httpResponse{
				statusCode: resp.StatusCode,
				body:       resp.Body,
				headers:    resp.Header,
			}, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
	}

	return nil, lastErr
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
