package pipeline

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bogota(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	return loc
}

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })
}

func TestCandidateWindows_Routine(t *testing.T) {
	loc := bogota(t)
	freezeClock(t, time.Date(2025, time.October, 10, 13, 25, 42, 0, loc))

	windows := CandidateWindows(false, loc)
	require.Len(t, windows, 1)

	w := windows[0]
	assert.True(t, w.From.Equal(time.Date(2025, time.October, 10, 12, 0, 0, 0, loc)))
	assert.True(t, w.To.Equal(time.Date(2025, time.October, 10, 13, 0, 0, 0, loc)))
	assert.Equal(t, 60, w.Granularity)
}

func TestCandidateWindows_RoutineAtTopOfHour(t *testing.T) {
	loc := bogota(t)
	freezeClock(t, time.Date(2025, time.October, 10, 13, 0, 0, 0, loc))

	windows := CandidateWindows(false, loc)
	require.Len(t, windows, 1)
	assert.True(t, windows[0].From.Equal(time.Date(2025, time.October, 10, 12, 0, 0, 0, loc)))
	assert.True(t, windows[0].To.Equal(time.Date(2025, time.October, 10, 13, 0, 0, 0, loc)))
}

func TestCandidateWindows_Backfill(t *testing.T) {
	loc := bogota(t)
	freezeClock(t, time.Date(2025, time.October, 10, 13, 25, 0, 0, loc))

	windows := CandidateWindows(true, loc)
	require.Len(t, windows, 1)

	w := windows[0]
	assert.True(t, w.From.Equal(time.Date(2025, time.October, 9, 0, 0, 0, 0, loc)))
	assert.True(t, w.To.Equal(time.Date(2025, time.October, 10, 0, 0, 0, 0, loc)))
	assert.Equal(t, 60, w.Granularity)
}

func TestCandidateWindows_BackfillCrossesMonthBoundary(t *testing.T) {
	loc := bogota(t)
	freezeClock(t, time.Date(2025, time.November, 1, 8, 0, 0, 0, loc))

	windows := CandidateWindows(true, loc)
	require.Len(t, windows, 1)
	assert.True(t, windows[0].From.Equal(time.Date(2025, time.October, 31, 0, 0, 0, 0, loc)))
	assert.True(t, windows[0].To.Equal(time.Date(2025, time.November, 1, 0, 0, 0, 0, loc)))
}
