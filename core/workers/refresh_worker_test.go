package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podclean-api/core/domain"
	"podclean-api/core/errors"
	"podclean-api/pkg/featureflags"
)

// mockRefresher records refreshed URLs and blocks until release is closed
type mockRefresher struct {
	mu      sync.Mutex
	urls    []string
	cacheOn []bool
	release chan struct{}
	fail    bool
	done    chan string
}

func newMockRefresher() *mockRefresher {
	return &mockRefresher{release: make(chan struct{}), done: make(chan string, 16)}
}

func (m *mockRefresher) Refresh(ctx context.Context, feedURL string) errors.Result[*domain.CleanedFeed] {
	select {
	case <-m.release:
	case <-ctx.Done():
		return errors.Err[*domain.CleanedFeed](errors.New("test.cancelled", "cancelled"))
	}

	m.mu.Lock()
	m.urls = append(m.urls, feedURL)
	m.cacheOn = append(m.cacheOn, featureflags.IsEnabled(ctx, featureflags.CacheEnabled))
	m.mu.Unlock()
	m.done <- feedURL

	if m.fail {
		return errors.Err[*domain.CleanedFeed](errors.New("clean.fetch_failed", "Unable to fetch feed"))
	}
	return errors.Ok(&domain.CleanedFeed{URL: feedURL})
}

type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) Debug(string, map[string]interface{}) {}
func (m *mockLogger) Info(string, map[string]interface{})  {}

func (m *mockLogger) Warn(msg string, _ map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}
func (m *mockLogger) Error(msg string, _ map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case url := <-ch:
		return url
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not run")
		return ""
	}
}

func TestRefreshWorker_SubmitBeforeStart(t *testing.T) {
	rw := NewRefreshWorker(newMockRefresher(), nil, WorkerConfig{})

	err := rw.Submit(context.Background(), "https://example.com/feed.xml")
	assert.True(t, errors.HasType(err, TypeNotRunning))
	assert.False(t, rw.Enqueue(context.Background(), "https://example.com/feed.xml"))
}

func TestRefreshWorker_RefreshesWithRequestFlags(t *testing.T) {
	refresher := newMockRefresher()
	rw := NewRefreshWorker(refresher, nil, WorkerConfig{MaxWorkers: 1, QueueSize: 4})
	rw.Start()
	defer rw.Stop()

	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.CacheEnabled: true})
	ctx := featureflags.WithManager(context.Background(), flags)

	require.NoError(t, rw.Submit(ctx, "https://example.com/a.xml"))
	close(refresher.release)

	assert.Equal(t, "https://example.com/a.xml", waitFor(t, refresher.done))
	refresher.mu.Lock()
	assert.Equal(t, []bool{true}, refresher.cacheOn)
	refresher.mu.Unlock()
}

func TestRefreshWorker_DeduplicatesPendingURLs(t *testing.T) {
	refresher := newMockRefresher()
	rw := NewRefreshWorker(refresher, nil, WorkerConfig{MaxWorkers: 1, QueueSize: 4})
	rw.Start()
	defer rw.Stop()

	ctx := context.Background()
	require.NoError(t, rw.Submit(ctx, "https://example.com/a.xml"))
	require.NoError(t, rw.Submit(ctx, "https://example.com/a.xml"))
	assert.Equal(t, 1, rw.Pending())

	close(refresher.release)
	waitFor(t, refresher.done)

	assert.Eventually(t, func() bool { return rw.Pending() == 0 }, 2*time.Second, 10*time.Millisecond)
	refresher.mu.Lock()
	assert.Len(t, refresher.urls, 1)
	refresher.mu.Unlock()
}

func TestRefreshWorker_QueueFull(t *testing.T) {
	refresher := newMockRefresher()
	rw := NewRefreshWorker(refresher, nil, WorkerConfig{MaxWorkers: 1, QueueSize: 1})
	rw.Start()
	defer rw.Stop()

	ctx := context.Background()
	require.NoError(t, rw.Submit(ctx, "https://example.com/a.xml"))
	// The single worker takes a.xml and blocks, freeing the queue slot
	assert.Eventually(t, func() bool { return len(rw.jobQueue) == 0 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, rw.Submit(ctx, "https://example.com/b.xml"))

	err := rw.Submit(ctx, "https://example.com/c.xml")
	assert.True(t, errors.HasType(err, TypeQueueFull))
}

func TestRefreshWorker_LogsFailures(t *testing.T) {
	refresher := newMockRefresher()
	refresher.fail = true
	logger := &mockLogger{}
	rw := NewRefreshWorker(refresher, logger, WorkerConfig{MaxWorkers: 1})
	rw.Start()
	defer rw.Stop()

	require.NoError(t, rw.Submit(context.Background(), "https://example.com/a.xml"))
	close(refresher.release)
	waitFor(t, refresher.done)

	assert.Eventually(t, func() bool {
		logger.mu.Lock()
		defer logger.mu.Unlock()
		return len(logger.messages) == 1 && logger.messages[0] == "Background refresh failed"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRefreshWorker_StopIsIdempotent(t *testing.T) {
	rw := NewRefreshWorker(newMockRefresher(), nil, WorkerConfig{})
	rw.Start()
	rw.Start()
	rw.Stop()
	rw.Stop()

	assert.False(t, rw.Enqueue(context.Background(), "https://example.com/a.xml"))
}
