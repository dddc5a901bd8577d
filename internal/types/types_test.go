package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeFrameValid(t *testing.T) {
	tests := []struct {
		input    TimeFrame
		expected bool
	}{
		{TimeFrameToday, true},
		{TimeFrameThreeDays, true},
		{TimeFrameWeek, true},
		{TimeFrameMonth, true},
		{TimeFrame(""), false},
		{TimeFrame("fortnight"), false},
		{TimeFrame("Today"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.input.Valid(), "timeFrame %q", tt.input)
	}
}

func TestTimeFrameTitles(t *testing.T) {
	assert.Equal(t, "Today", TimeFrameTitles[TimeFrameToday])
	assert.Equal(t, "Last 3 Days", TimeFrameTitles[TimeFrameThreeDays])
	assert.Equal(t, "This Week", TimeFrameTitles[TimeFrameWeek])
	assert.Equal(t, "This Month", TimeFrameTitles[TimeFrameMonth])
}
