package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, time.June, 10, 10, 0, 0, 0, time.Local)

func TestParseClockTimeFormats(t *testing.T) {
	cases := []struct {
		text string
		hour int
		min  int
	}{
		{"9:30 pm", 21, 30},
		{"9 pm", 21, 0},
		{"at 9:30 pm", 21, 30},
		{"at 11 am", 11, 0},
		{"21:00", 21, 0},
		{"12 am", 0, 0},
		{"12 pm", 12, 0},
		{"12:15am", 0, 15},
	}

	for _, tc := range cases {
		got, err := ParseClockTime(tc.text, base)
		require.NoError(t, err, "text %q", tc.text)
		assert.Equal(t, tc.hour, got.Hour(), "text %q", tc.text)
		assert.Equal(t, tc.min, got.Minute(), "text %q", tc.text)
	}
}

func TestParseClockTimeAdvancesPastTimes(t *testing.T) {
	// 9:00 at a 10:00 "now" has already passed, so it rolls to tomorrow.
	got, err := ParseClockTime("9:00 am", base)
	require.NoError(t, err)
	assert.Equal(t, base.Day()+1, got.Day())
	assert.True(t, got.After(base))

	// Exactly "now" is not strictly after now, so it also rolls.
	got, err = ParseClockTime("10:00 am", base)
	require.NoError(t, err)
	assert.Equal(t, base.Day()+1, got.Day())

	// A future same-day time is returned unchanged.
	got, err = ParseClockTime("9:00 pm", base)
	require.NoError(t, err)
	assert.Equal(t, base.Day(), got.Day())
	assert.Equal(t, 21, got.Hour())
}

func TestParseClockTimeRejectsJunk(t *testing.T) {
	for _, text := range []string{"", "call mom", "99:99", "at noon"} {
		_, err := ParseClockTime(text, base)
		assert.ErrorIs(t, err, ErrNoTime, "text %q", text)
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		text string
		want time.Duration
	}{
		{"1 hour 30 minutes", 90 * time.Minute},
		{"5 minutes", 5 * time.Minute},
		{"30 seconds", 30 * time.Second},
		{"90s", 90 * time.Second},
		{"2h", 2 * time.Hour},
		{"10 mins", 10 * time.Minute},
		{"45 secs", 45 * time.Second},
		{"1 hour 5 mins 10s", time.Hour + 5*time.Minute + 10*time.Second},
		{"2 hours", 2 * time.Hour},
	}

	for _, tc := range cases {
		got, err := ParseDuration(tc.text)
		require.NoError(t, err, "text %q", tc.text)
		assert.Equal(t, tc.want, got, "text %q", tc.text)
	}
}

func TestParseDurationNoDoubleCount(t *testing.T) {
	// "5 minutes" must not also match the bare "m" pattern on the same digits.
	got, err := ParseDuration("5 minutes")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, got)
}

func TestParseDurationRejectsJunk(t *testing.T) {
	for _, text := range []string{"", "forever", "0 seconds", "minutes"} {
		_, err := ParseDuration(text)
		assert.ErrorIs(t, err, ErrNoDuration, "text %q", text)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1 hour 30 minutes", FormatDuration(90*time.Minute))
	assert.Equal(t, "5 minutes", FormatDuration(5*time.Minute))
	assert.Equal(t, "1 second", FormatDuration(time.Second))
	assert.Equal(t, "0 seconds", FormatDuration(0))
	assert.Equal(t, "2 hours 5 seconds", FormatDuration(2*time.Hour+5*time.Second))
}
