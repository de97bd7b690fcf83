package clean

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"podclean-api/core/errors"
	"podclean-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	mu      sync.Mutex
	calls   []string
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.mu.Unlock()
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockHTTPClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// serving returns a client answering every request with status and body
func serving(status int, body string) *mockHTTPClient {
	return &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: status, body: body}, nil
	}}
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// mockCache is a map-backed implementation of the Cache interface
type mockCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	ttls    map[string]time.Duration
	deleted []string
	getErr  error
}

func newMockCache() *mockCache {
	return &mockCache{items: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.items[key]
	if !ok {
		return nil, errors.NewCacheMiss(key)
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	m.deleted = append(m.deleted, key)
	return nil
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// mockLogger records every entry
type mockLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (m *mockLogger) add(level, msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, logEntry{level, msg, fields})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.add("debug", msg, fields) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.add("info", msg, fields) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.add("warn", msg, fields) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.add("error", msg, fields) }

func (m *mockLogger) find(msg string) (logEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.msg == msg {
			return e, true
		}
	}
	return logEntry{}, false
}

// mockRefreshQueue records scheduled refreshes
type mockRefreshQueue struct {
	mu   sync.Mutex
	urls []string
}

func (m *mockRefreshQueue) Enqueue(ctx context.Context, feedURL string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, feedURL)
	return true
}
