package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanedFeed_Total(t *testing.T) {
	feed := &CleanedFeed{Kept: 3, Dropped: 7}
	assert.Equal(t, 10, feed.Total())
}

func TestEpisode_Clock(t *testing.T) {
	assert.Equal(t, "01:02:03", Episode{Duration: 3723}.Clock())
	assert.Equal(t, "00:00", Episode{}.Clock())
}

func TestFeedPreview_KeptCount(t *testing.T) {
	preview := &FeedPreview{Episodes: []Episode{{Kept: true}, {Kept: false}, {Kept: true}}}
	assert.Equal(t, 2, preview.KeptCount())
}
