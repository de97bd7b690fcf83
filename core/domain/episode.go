// ABOUTME: Preview domain models for a podcast feed and its episodes
// ABOUTME: Used to show which episodes a clean would keep before subscribing

package domain

import (
	"time"

	"podclean-api/pkg/utils/duration"
)

// FeedPreview summarizes a podcast feed
type FeedPreview struct {
	URL         string
	Title       string
	Description string
	Link        string
	Image       string
	Author      string

	// Threshold is the cleaning threshold computed over Episodes
	Threshold float64

	Episodes []Episode
}

// Episode is a single podcast item
type Episode struct {
	GUID      string
	Title     string
	Link      string
	Summary   string
	Published *time.Time

	// Duration in seconds, zero when the feed does not state one
	Duration int

	// Kept reports whether cleaning would keep this episode
	Kept bool
}

// Clock renders the duration as HH:MM:SS or MM:SS
func (e Episode) Clock() string {
	return duration.FormatSeconds(e.Duration)
}

// KeptCount returns how many episodes survive cleaning
func (p *FeedPreview) KeptCount() int {
	n := 0
	for _, e := range p.Episodes {
		if e.Kept {
			n++
		}
	}
	return n
}
