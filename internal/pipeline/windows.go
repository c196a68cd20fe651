package pipeline

import (
	"time"

	"github.com/sincov/airq-ingest-service/internal/domain"
)

// defaultGranularity is the sampling granularity in minutes for both the
// routine and backfill windows; the upstream network reports hourly averages.
const defaultGranularity = 60

// CandidateWindows returns the ordered time windows to try for one station
// in the given zone. Routine cycles get the last full hour ending at the
// top of the current hour; a cold-start backfill gets all of yesterday,
// 00:00 to 24:00 local.
func CandidateWindows(fullBackfill bool, loc *time.Location) []domain.Window {
	now := clock.Now().In(loc)

	if fullBackfill {
		y := now.AddDate(0, 0, -1)
		start := time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, loc)
		return []domain.Window{{
			From:        start,
			To:          start.AddDate(0, 0, 1),
			Granularity: defaultGranularity,
		}}
	}

	top := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, loc)
	return []domain.Window{{
		From:        top.Add(-time.Hour),
		To:          top,
		Granularity: defaultGranularity,
	}}
}
