package clean

import (
	"bytes"
	"context"

	"github.com/mmcdole/gofeed"

	"podclean-api/core/domain"
	"podclean-api/core/errors"
	"podclean-api/core/result"
	"podclean-api/core/severity"
	"podclean-api/pkg/utils/duration"
	"podclean-api/pkg/utils/html"
	"podclean-api/pkg/utils/pubdate"
)

const summaryLength = 280

// Preview parses the feed at feedURL and reports which episodes a clean
// would keep. previous is the URL submitted last time; submitting the same
// URL again is rejected.
func (s *Service) Preview(ctx context.Context, feedURL, previous string) errors.Result[*domain.FeedPreview] {
	return errors.Catching(ctx, func(ctx context.Context) errors.Result[*domain.FeedPreview] {
		if feedURL != "" && feedURL == previous {
			return errors.Err[*domain.FeedPreview](invalidURL(TypePreviewInvalidURL, feedURL, "same as previous submission"))
		}
		errors.SyncedThrowing(validateURL(feedURL, TypePreviewNoURL, TypePreviewInvalidURL))

		pending := result.Go(func() errors.Result[[]byte] { return s.fetch(ctx, feedURL) })
		body := errors.Throwing[[]byte](ctx, pending)

		parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
		if err != nil {
			return errors.FromNativeError[*domain.FeedPreview](err, &errors.RuntimeError{
				Type:     TypePreviewParseFailed,
				Message:  "Unable to parse feed",
				Severity: severity.Warning,
				Payload:  map[string]any{"url": feedURL},
			})
		}

		return errors.Ok(s.buildPreview(feedURL, parsed))
	}, s.handleError)
}

func (s *Service) buildPreview(feedURL string, parsed *gofeed.Feed) *domain.FeedPreview {
	preview := &domain.FeedPreview{
		URL:         feedURL,
		Title:       parsed.Title,
		Description: html.Truncate(html.StripHTML(parsed.Description), summaryLength),
		Link:        parsed.Link,
		Episodes:    make([]domain.Episode, 0, len(parsed.Items)),
	}

	if parsed.Image != nil {
		preview.Image = parsed.Image.URL
	}
	if parsed.ITunesExt != nil {
		if parsed.ITunesExt.Image != "" {
			preview.Image = parsed.ITunesExt.Image
		}
		preview.Author = parsed.ITunesExt.Author
	}
	if preview.Author == "" && parsed.Author != nil {
		preview.Author = parsed.Author.Name
	}

	durations := make([]int, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		episode := domain.Episode{
			GUID:      item.GUID,
			Title:     item.Title,
			Link:      item.Link,
			Published: pubdate.Resolve(item.PublishedParsed, item.Published),
		}

		summary := item.Description
		if item.ITunesExt != nil {
			episode.Duration = duration.ParseClock(item.ITunesExt.Duration)
			if item.ITunesExt.Summary != "" {
				summary = item.ITunesExt.Summary
			}
		}
		episode.Summary = html.Truncate(html.StripHTML(summary), summaryLength)

		durations = append(durations, episode.Duration)
		preview.Episodes = append(preview.Episodes, episode)
	}

	if len(durations) > 0 {
		preview.Threshold = Threshold(durations, s.opts.StdDevFactor)
	}
	for i := range preview.Episodes {
		preview.Episodes[i].Kept = float64(preview.Episodes[i].Duration) > preview.Threshold
	}
	return preview
}
