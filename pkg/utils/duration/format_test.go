package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"01:02:03", 3723},
		{"45:10", 2710},
		{"00:00:59", 59},
		{"duration: 10:00 min", 600},
		{"1:02:03", 123},
		{"3600", 0},
		{"", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseClock(tt.input))
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "01:02:03", FormatSeconds(3723))
	assert.Equal(t, "45:10", FormatSeconds(2710))
	assert.Equal(t, "00:00", FormatSeconds(0))
	assert.Equal(t, "00:00", FormatSeconds(-5))
}

func TestSecondsToHumanReadable(t *testing.T) {
	assert.Equal(t, "45 seconds", SecondsToHumanReadable(45))
	assert.Equal(t, "1 minute", SecondsToHumanReadable(60))
	assert.Equal(t, "1 hour 2 minutes", SecondsToHumanReadable(3720))
	assert.Equal(t, "2 hours", SecondsToHumanReadable(7200))
}
