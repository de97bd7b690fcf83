// ABOUTME: Duration helpers for podcast episode lengths
// ABOUTME: Parses itunes:duration clock strings and formats seconds for display

package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// clockPattern matches [HH:]MM:SS with two-digit groups anywhere in the input.
var clockPattern = regexp.MustCompile(`(?:(\d\d):)*(\d\d):(\d\d)`)

// ParseClock converts an itunes:duration value such as "01:02:03" or "45:10"
// into seconds. Only the first clock-shaped match counts; values without one
// (including bare second counts) yield 0.
func ParseClock(value string) int {
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds
}

// FormatSeconds converts seconds to HH:MM:SS or MM:SS format
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// SecondsToHumanReadable converts seconds to a human-readable format
func SecondsToHumanReadable(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d seconds", seconds)
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	parts := []string{}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}

	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
