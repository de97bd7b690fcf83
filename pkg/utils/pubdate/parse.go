// ABOUTME: Flexible parsing of the date formats found in RSS and Atom feeds
// ABOUTME: Used when a feed parser leaves a publication date unparsed

package pubdate

import (
	"strings"
	"time"
)

var layouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// Parse tries each known layout in turn.
func Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Resolve prefers an already parsed time, then falls back to Parse on raw.
func Resolve(parsed *time.Time, raw string) *time.Time {
	if parsed != nil {
		return parsed
	}
	if t, ok := Parse(raw); ok {
		return &t
	}
	return nil
}
