// ABOUTME: CleanedFeed domain model represents a podcast feed after filtering
// ABOUTME: Carries the re-rendered XML together with the statistics that produced it

package domain

import "time"

// CleanedFeed is a podcast feed with its short episodes removed
type CleanedFeed struct {
	// URL is the source feed URL
	URL string `json:"url"`

	// XML is the re-rendered feed document
	XML []byte `json:"xml"`

	// Threshold is the duration in seconds an episode had to exceed to stay
	Threshold float64 `json:"threshold"`

	// Kept and Dropped count the items left in and removed from the feed
	Kept    int `json:"kept"`
	Dropped int `json:"dropped"`

	// CleanedAt is when the feed was fetched and filtered
	CleanedAt time.Time `json:"cleaned_at"`
}

// Total returns the number of items the source feed carried
func (f *CleanedFeed) Total() int {
	return f.Kept + f.Dropped
}
