// ABOUTME: Refresh worker re-cleans cached feeds in the background
// ABOUTME: Provides a managed worker pool that deduplicates queued feed URLs

package workers

import (
	"context"
	"sync"

	"podclean-api/core/domain"
	"podclean-api/core/errors"
	"podclean-api/core/interfaces"
	"podclean-api/pkg/errlog"
	"podclean-api/pkg/featureflags"
)

const (
	TypeNotRunning = "workers.not_running"
	TypeQueueFull  = "workers.queue_full"
)

// Refresher produces a fresh cleaned feed, bypassing any cached copy
type Refresher interface {
	Refresh(ctx context.Context, feedURL string) errors.Result[*domain.CleanedFeed]
}

// refreshJob carries the request's flags so the worker honours them
type refreshJob struct {
	url   string
	flags featureflags.Manager
}

// RefreshWorker manages background feed refreshes
type RefreshWorker struct {
	refresher  Refresher
	logger     interfaces.Logger
	jobQueue   chan refreshJob
	maxWorkers int

	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
	pending map[string]struct{}
}

// WorkerConfig holds configuration for the refresh worker
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 4,
		QueueSize:  64,
	}
}

// NewRefreshWorker creates a new refresh worker. Call Start before Enqueue.
func NewRefreshWorker(refresher Refresher, logger interfaces.Logger, config WorkerConfig) *RefreshWorker {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultWorkerConfig().MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultWorkerConfig().QueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &RefreshWorker{
		refresher:  refresher,
		logger:     logger,
		jobQueue:   make(chan refreshJob, config.QueueSize),
		maxWorkers: config.MaxWorkers,
		ctx:        ctx,
		cancel:     cancel,
		pending:    make(map[string]struct{}),
	}
}

// Start starts the worker pool
func (rw *RefreshWorker) Start() {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.running {
		return
	}
	for i := 0; i < rw.maxWorkers; i++ {
		rw.wg.Add(1)
		go rw.run()
	}
	rw.running = true
}

// Stop cancels in-flight refreshes and waits for the workers to exit.
// A stopped worker cannot be restarted.
func (rw *RefreshWorker) Stop() {
	rw.mu.Lock()
	if !rw.running {
		rw.mu.Unlock()
		return
	}
	rw.running = false
	rw.cancel()
	close(rw.jobQueue)
	rw.mu.Unlock()

	rw.wg.Wait()
}

// Submit queues feedURL for refresh. A URL already queued or in flight is
// accepted without queueing a duplicate.
func (rw *RefreshWorker) Submit(ctx context.Context, feedURL string) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if !rw.running {
		return errors.New(TypeNotRunning, "Refresh worker is not running")
	}
	if _, ok := rw.pending[feedURL]; ok {
		return nil
	}

	select {
	case rw.jobQueue <- refreshJob{url: feedURL, flags: featureflags.FromContext(ctx)}:
		rw.pending[feedURL] = struct{}{}
		return nil
	default:
		return errors.New(TypeQueueFull, "Refresh queue is full")
	}
}

// Enqueue is Submit for callers that only need to know whether the job was taken
func (rw *RefreshWorker) Enqueue(ctx context.Context, feedURL string) bool {
	return rw.Submit(ctx, feedURL) == nil
}

// Pending reports how many URLs are queued or in flight
func (rw *RefreshWorker) Pending() int {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return len(rw.pending)
}

func (rw *RefreshWorker) run() {
	defer rw.wg.Done()

	for {
		select {
		case job, ok := <-rw.jobQueue:
			if !ok {
				return
			}
			rw.process(job)
		case <-rw.ctx.Done():
			return
		}
	}
}

func (rw *RefreshWorker) process(job refreshJob) {
	defer func() {
		rw.mu.Lock()
		delete(rw.pending, job.url)
		rw.mu.Unlock()
	}()

	ctx := rw.ctx
	if job.flags != nil {
		ctx = featureflags.WithManager(ctx, job.flags)
	}

	res := rw.refresher.Refresh(ctx, job.url)
	if res.IsError() {
		errlog.Log(rw.logger, "Background refresh failed", res.GetError())
		return
	}
	if rw.logger != nil {
		rw.logger.Debug("Background refresh done", map[string]interface{}{"url": job.url})
	}
}
