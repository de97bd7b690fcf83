package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podclean-api/pkg/utils/requestid"
)

type recordedLog struct {
	level  string
	msg    string
	fields map[string]interface{}
}

type captureLogger struct {
	mu   sync.Mutex
	logs []recordedLog
}

func (l *captureLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, recordedLog{level, msg, fields})
}

func (l *captureLogger) Debug(msg string, f map[string]interface{}) { l.add("debug", msg, f) }
func (l *captureLogger) Info(msg string, f map[string]interface{})  { l.add("info", msg, f) }
func (l *captureLogger) Warn(msg string, f map[string]interface{})  { l.add("warn", msg, f) }
func (l *captureLogger) Error(msg string, f map[string]interface{}) { l.add("error", msg, f) }

func newFastClient(logger *captureLogger) *StandardHTTPClient {
	var client *StandardHTTPClient
	if logger == nil {
		client = NewStandardHTTPClient(5*time.Second, nil)
	} else {
		client = NewStandardHTTPClient(5*time.Second, logger)
	}
	client.backoff = time.Millisecond
	return client
}

func TestNewStandardHTTPClient(t *testing.T) {
	client := NewStandardHTTPClient(10*time.Second, nil)
	assert.Equal(t, 10*time.Second, client.client.Timeout)
	assert.Equal(t, http.DefaultTransport, client.client.Transport)

	logged := NewStandardHTTPClient(time.Second, &captureLogger{})
	assert.IsType(t, &LoggingRoundTripper{}, logged.client.Transport)
}

func TestStandardHTTPClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Contains(t, r.Header.Get("User-Agent"), "PodcleanAPI")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	resp, err := newFastClient(nil).Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body().Close()

	body, err := io.ReadAll(resp.Body())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "application/rss+xml", resp.Header("content-type"))
	assert.Equal(t, "<rss/>", string(body))
}

func TestStandardHTTPClient_Get_PropagatesRequestID(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(requestid.Header)
	}))
	defer server.Close()

	logger := &captureLogger{}
	ctx := requestid.With(context.Background(), "req-123")
	resp, err := newFastClient(logger).Get(ctx, server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, "req-123", seen)
	require.Len(t, logger.logs, 1)
	assert.Equal(t, "debug", logger.logs[0].level)
	assert.Equal(t, "req-123", logger.logs[0].fields["request_id"])
	assert.Equal(t, http.StatusOK, logger.logs[0].fields["status"])
}

func TestStandardHTTPClient_Get_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	resp, err := newFastClient(nil).Get(ctx, server.URL)
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context deadline exceeded")
}

func TestStandardHTTPClient_Get_InvalidURL(t *testing.T) {
	resp, err := newFastClient(nil).Get(context.Background(), "not a valid url")
	assert.Nil(t, resp)
	assert.Error(t, err)
}

func TestStandardHTTPClient_Get_Retry503(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := newFastClient(nil).Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestStandardHTTPClient_Get_MaxRetries(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	resp, err := newFastClient(nil).Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, int32(maxRetries), atomic.LoadInt32(&attempts))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode())
}

func TestStandardHTTPClient_Get_NoRetryOn4xx(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resp, err := newFastClient(nil).Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestLoggingRoundTripper_LogsFailures(t *testing.T) {
	logger := &captureLogger{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newFastClient(logger)
	_, err := client.Get(context.Background(), url)
	require.Error(t, err)

	require.Len(t, logger.logs, maxRetries)
	for _, entry := range logger.logs {
		assert.Equal(t, "warn", entry.level)
		assert.True(t, strings.HasPrefix(entry.fields["url"].(string), "http://"))
	}
}

func TestHTTPResponse_Header(t *testing.T) {
	resp := &httpResponse{
		headers: http.Header{"Content-Type": []string{"application/xml"}},
	}

	assert.Equal(t, "application/xml", resp.Header("content-type"))
	assert.Empty(t, resp.Header("Non-Existent"))
}
