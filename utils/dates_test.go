package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTomorrowDateUsesUTC(t *testing.T) {
	// 23:30 in a UTC+2 zone is 21:30 UTC, so "tomorrow" is still the 2nd.
	local := time.Date(2026, 9, 1, 23, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	assert.Equal(t, "2026-09-02", TomorrowDate(local))

	// 01:30 UTC on the 1st stays on the 1st; tomorrow is the 2nd.
	utc := time.Date(2026, 9, 1, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-09-02", TomorrowDate(utc))
}

func TestTomorrowDateCrossesMonthBoundary(t *testing.T) {
	eom := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-09-01", TomorrowDate(eom))
}

func TestISTFormatting(t *testing.T) {
	// 08:45 UTC is 14:15 IST.
	utc := time.Date(2026, 9, 1, 8, 45, 9, 0, time.UTC)
	assert.Equal(t, "01/09/2026", FormatISTDate(utc))
	assert.Equal(t, "02:15:09 pm", FormatISTTime(utc))
}
