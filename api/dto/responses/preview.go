// ABOUTME: Response DTOs for the feed preview endpoint
// ABOUTME: Provides structured responses with JSON serialization

package responses

import "time"

// PreviewResponse describes a podcast feed and what cleaning would do to it
type PreviewResponse struct {
	URL          string            `json:"url" doc:"Feed URL"`
	Title        string            `json:"title" doc:"Podcast title"`
	Description  string            `json:"description,omitempty" doc:"Podcast description as plain text"`
	Link         string            `json:"link,omitempty" doc:"Podcast website"`
	Image        string            `json:"image,omitempty" doc:"Podcast artwork URL"`
	Author       string            `json:"author,omitempty" doc:"Podcast author"`
	Threshold    float64           `json:"threshold" doc:"Duration in seconds an episode must exceed to be kept"`
	ThresholdStr string            `json:"threshold_readable" doc:"Threshold as human readable text"`
	Kept         int               `json:"kept" doc:"Number of episodes a clean would keep"`
	Episodes     []EpisodeResponse `json:"episodes" doc:"Feed episodes in feed order"`
	CleanURL     string            `json:"clean_url" doc:"Path of the cleaned feed for this URL"`
}

// EpisodeResponse represents a single episode in a preview
type EpisodeResponse struct {
	GUID      string     `json:"guid,omitempty" doc:"Episode GUID"`
	Title     string     `json:"title" doc:"Episode title"`
	Link      string     `json:"link,omitempty" doc:"Episode link"`
	Summary   string     `json:"summary,omitempty" doc:"Episode summary as plain text"`
	Published *time.Time `json:"published,omitempty" doc:"Publication date"`
	Duration  int        `json:"duration" doc:"Duration in seconds"`
	Clock     string     `json:"duration_clock" doc:"Duration as HH:MM:SS or MM:SS"`
	Kept      bool       `json:"kept" doc:"Whether a clean keeps this episode"`
}

// HealthResponse reports service liveness and enabled features
type HealthResponse struct {
	Status   string          `json:"status" example:"ok" doc:"Service status"`
	Time     time.Time       `json:"time" doc:"Server time"`
	Features map[string]bool `json:"features" doc:"Feature flag states"`
}
