package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bogota(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	return loc
}

func TestNormalizeTimestamp_EndOfDayRollover(t *testing.T) {
	loc := bogota(t)

	rolled, ok := NormalizeTimestamp("10-10-2025 24:00", loc)
	require.True(t, ok)
	next, ok := NormalizeTimestamp("11-10-2025 00:00", loc)
	require.True(t, ok)

	assert.True(t, rolled.Equal(next), "24:00 should parse as 00:00 of the next day")

	// Minutes survive the rollover.
	withMinutes, ok := NormalizeTimestamp("31-12-2025 24:30", loc)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 30, 0, 0, loc).Format(time.RFC3339),
		withMinutes.Format(time.RFC3339))
}

func TestNormalizeTimestamp_Sentinels(t *testing.T) {
	loc := bogota(t)

	sentinels := []string{
		"Minimum", "Maximum", "Average", "Avg", "Summary:",
		"MinDate", "MaxDate", "MinTime", "MaxTime",
		"Num", "DataPrecent", "Std", "", "  ",
		"MINIMUM", "summary:",
	}
	for _, s := range sentinels {
		_, ok := NormalizeTimestamp(s, loc)
		assert.False(t, ok, "sentinel %q must yield no timestamp", s)
	}
}

func TestNormalizeTimestamp_Formats(t *testing.T) {
	loc := bogota(t)
	want := time.Date(2025, time.October, 10, 13, 0, 0, 0, loc)

	tests := []struct {
		name string
		raw  any
	}{
		{"ISO with UTC offset", "2025-10-10T13:00:00-05:00"},
		{"ISO with Z suffix", "2025-10-10T18:00:00Z"},
		{"ISO without offset", "2025-10-10T13:00:00"},
		{"ISO without seconds", "2025-10-10T13:00"},
		{"day-month-year clock", "10-10-2025 13:00"},
		{"year-month-day with seconds", "2025-10-10 13:00:00"},
		{"year-month-day without seconds", "2025-10-10 13:00"},
		{"tick counter number", json.Number("638957160000000000")},
		{"tick counter string", "638957160000000000"},
		{"unix seconds number", float64(1_760_119_200)},
		{"unix seconds string", "1760119200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeTimestamp(tt.raw, loc)
			require.True(t, ok)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestNormalizeTimestamp_Unparseable(t *testing.T) {
	loc := bogota(t)

	tests := []struct {
		name string
		raw  any
	}{
		{"garbage string", "not a date"},
		{"small number", float64(60)},
		{"zero", float64(0)},
		{"nil", nil},
		{"bool", true},
		{"invalid day", "99-99-2025 13:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeTimestamp(tt.raw, loc)
			assert.False(t, ok)
			assert.True(t, got.IsZero(), "unparseable input must not fall back to the current time")
		})
	}
}
