// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Provides clean separation between business logic and API layer

package mappers

import (
	"math"
	"net/url"

	"github.com/jinzhu/copier"

	"podclean-api/api/dto/responses"
	"podclean-api/core/domain"
	"podclean-api/pkg/utils/duration"
)

// ToPreviewResponse converts a domain FeedPreview to a PreviewResponse DTO
func ToPreviewResponse(preview *domain.FeedPreview) *responses.PreviewResponse {
	if preview == nil {
		return nil
	}

	response := &responses.PreviewResponse{
		URL:          preview.URL,
		Title:        preview.Title,
		Description:  preview.Description,
		Link:         preview.Link,
		Image:        preview.Image,
		Author:       preview.Author,
		Threshold:    preview.Threshold,
		ThresholdStr: duration.SecondsToHumanReadable(int(math.Round(preview.Threshold))),
		Kept:         preview.KeptCount(),
		Episodes:     make([]responses.EpisodeResponse, 0, len(preview.Episodes)),
		CleanURL:     CleanPath(preview.URL),
	}

	for _, episode := range preview.Episodes {
		response.Episodes = append(response.Episodes, ToEpisodeResponse(episode))
	}

	return response
}

// ToEpisodeResponse converts a domain Episode to an EpisodeResponse DTO.
// Fields are matched by name; Clock comes from the formatted duration.
func ToEpisodeResponse(episode domain.Episode) responses.EpisodeResponse {
	var response responses.EpisodeResponse
	_ = copier.Copy(&response, &episode) // same-named fields only, cannot fail for these types
	response.Clock = episode.Clock()
	return response
}

// CleanPath returns the API path serving the cleaned version of feedURL
func CleanPath(feedURL string) string {
	return "/api/clean?url=" + url.QueryEscape(feedURL)
}
