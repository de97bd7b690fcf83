// ABOUTME: Clean service fetches podcast feeds and strips unusually short episodes
// ABOUTME: Provides business logic for cleaning and previewing feeds independent of HTTP layer

package clean

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"lukechampine.com/blake3"

	"podclean-api/core/domain"
	"podclean-api/core/errors"
	"podclean-api/core/interfaces"
	"podclean-api/core/result"
	"podclean-api/core/severity"
	"podclean-api/pkg/errlog"
	"podclean-api/pkg/featureflags"
	"podclean-api/pkg/utils/jsonx"
)

// Options tunes the cleaning algorithm and caching.
type Options struct {
	// StdDevFactor scales the standard deviation in the threshold
	StdDevFactor float64

	// CacheTTL is how long a cleaned feed is reused
	CacheTTL time.Duration

	// MaxFeedBytes caps the upstream body; zero means DefaultMaxFeedBytes
	MaxFeedBytes int64
}

// DefaultMaxFeedBytes is the upstream body cap when none is configured.
const DefaultMaxFeedBytes = 10 << 20

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{StdDevFactor: 2, CacheTTL: 15 * time.Minute, MaxFeedBytes: DefaultMaxFeedBytes}
}

// RefreshQueue schedules a background re-clean of a cached feed.
type RefreshQueue interface {
	Enqueue(ctx context.Context, feedURL string) bool
}

// Service cleans podcast feeds
type Service struct {
	deps    interfaces.Dependencies
	opts    Options
	now     func() time.Time
	refresh RefreshQueue
}

// NewService creates a new clean service instance
func NewService(deps interfaces.Dependencies, opts Options) *Service {
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	return &Service{deps: deps, opts: opts, now: time.Now}
}

// UseRefreshQueue makes cache hits older than half the TTL schedule a
// background refresh on q.
func (s *Service) UseRefreshQueue(q RefreshQueue) {
	s.refresh = q
}

// Clean fetches the feed at feedURL and returns it without the items whose
// itunes:duration is not strictly above the threshold.
func (s *Service) Clean(ctx context.Context, feedURL string) errors.Result[*domain.CleanedFeed] {
	return s.clean(ctx, feedURL, true)
}

// Refresh cleans feedURL again without reading the cache and stores the result.
func (s *Service) Refresh(ctx context.Context, feedURL string) errors.Result[*domain.CleanedFeed] {
	return s.clean(ctx, feedURL, false)
}

func (s *Service) clean(ctx context.Context, feedURL string, readCache bool) errors.Result[*domain.CleanedFeed] {
	return errors.Catching(ctx, func(ctx context.Context) errors.Result[*domain.CleanedFeed] {
		errors.SyncedThrowing(validateURL(feedURL, TypeNoURL, TypeInvalidURL))

		key := CacheKey(feedURL)
		if readCache {
			if cached, ok := s.cached(ctx, key); ok {
				s.maybeRefresh(ctx, cached)
				return errors.Ok(cached)
			}
		}

		pending := result.Go(func() errors.Result[[]byte] { return s.fetch(ctx, feedURL) })
		body := errors.Throwing[[]byte](ctx, pending)

		feed := errors.SyncedThrowing(parsePodcast(body))
		out := feed.filter(s.opts.StdDevFactor)

		cleaned := &domain.CleanedFeed{
			URL:       feedURL,
			XML:       out.xml,
			Threshold: out.threshold,
			Kept:      out.kept,
			Dropped:   out.dropped,
			CleanedAt: s.now().UTC(),
		}
		s.store(ctx, key, cleaned)

		s.deps.Logger.Info("Feed cleaned", map[string]interface{}{
			"url":       feedURL,
			"kept":      cleaned.Kept,
			"dropped":   cleaned.Dropped,
			"threshold": cleaned.Threshold,
		})
		return errors.Ok(cleaned)
	}, s.handleError)
}

// CacheKey returns the cache key for a cleaned feed
func CacheKey(feedURL string) string {
	sum := blake3.Sum256([]byte(feedURL))
	return "clean:" + hex.EncodeToString(sum[:])
}

// handleError classifies a failure before it leaves the service: upstream
// failures are errors, bad input is informational.
func (s *Service) handleError(ctx context.Context, e *errors.RuntimeError) *errors.RuntimeError {
	e = errors.UpdateSeverity(e, severity.Error, upstreamFailure)
	e = errors.UpdateSeverity(e, severity.Info, callerFailure)
	errlog.Log(s.deps.Logger, "Feed request failed", e)
	return e
}

func validateURL(raw, noURLType, invalidType string) errors.Result[*url.URL] {
	if raw == "" {
		return errors.Err[*url.URL](noURL(noURLType))
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Err[*url.URL](invalidURL(invalidType, raw, err.Error()))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Err[*url.URL](invalidURL(invalidType, raw, "scheme must be http or https"))
	}
	if u.Host == "" {
		return errors.Err[*url.URL](invalidURL(invalidType, raw, "host is missing"))
	}
	return errors.Ok(u)
}

func (s *Service) fetch(ctx context.Context, feedURL string) errors.Result[[]byte] {
	if s.deps.HTTPClient == nil {
		return errors.Err[[]byte](errors.New("clean.no_http_client", "HTTP client not configured"))
	}

	resp, err := s.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return errors.Err[[]byte](fetchFailed(feedURL, err))
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		return errors.Err[[]byte](badStatus(feedURL, resp.StatusCode()))
	}

	limit := s.opts.MaxFeedBytes
	if limit <= 0 {
		limit = DefaultMaxFeedBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body(), limit+1))
	if err != nil {
		return errors.Err[[]byte](fetchFailed(feedURL, err))
	}
	if int64(len(body)) > limit {
		return errors.Err[[]byte](feedTooLarge(feedURL, limit))
	}
	return errors.Ok(body)
}

func (s *Service) cacheEnabled(ctx context.Context) bool {
	return s.deps.Cache != nil && featureflags.IsEnabled(ctx, featureflags.CacheEnabled)
}

func (s *Service) cached(ctx context.Context, key string) (*domain.CleanedFeed, bool) {
	if !s.cacheEnabled(ctx) {
		return nil, false
	}

	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil {
		if !errors.IsCacheMiss(err) {
			s.deps.Logger.Warn("Cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return nil, false
	}

	decoded := jsonx.Parse[domain.CleanedFeed](data)
	if decoded.IsError() {
		errlog.Log(s.deps.Logger, "Discarding corrupt cache entry", errors.UpdateSeverity(decoded.GetError(), severity.Warning, nil))
		_ = s.deps.Cache.Delete(ctx, key)
		return nil, false
	}

	feed := decoded.Get()
	return &feed, true
}

func (s *Service) maybeRefresh(ctx context.Context, feed *domain.CleanedFeed) {
	if s.refresh == nil || s.opts.CacheTTL <= 0 {
		return
	}
	if s.now().Sub(feed.CleanedAt) < s.opts.CacheTTL/2 {
		return
	}
	if s.refresh.Enqueue(ctx, feed.URL) {
		s.deps.Logger.Debug("Scheduled feed refresh", map[string]interface{}{"url": feed.URL})
	}
}

func (s *Service) store(ctx context.Context, key string, feed *domain.CleanedFeed) {
	if !s.cacheEnabled(ctx) {
		return
	}

	data, err := json.Marshal(feed)
	if err == nil {
		err = s.deps.Cache.Set(ctx, key, data, s.opts.CacheTTL)
	}
	if err != nil {
		s.deps.Logger.Debug("Failed to cache cleaned feed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
