package domain

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timestampSentinels are markers the upstream API places in the datetime
// column of summary rows. A record carrying one has no real timestamp.
// Keys are lowercase; matching is case-insensitive.
var timestampSentinels = map[string]struct{}{
	"minimum":     {},
	"maximum":     {},
	"average":     {},
	"avg":         {},
	"summary:":    {},
	"mindate":     {},
	"maxdate":     {},
	"mintime":     {},
	"maxtime":     {},
	"num":         {},
	"dataprecent": {}, // upstream's own spelling of "data percent"
	"std":         {},
}

// endOfDayRe matches the day-month-year clock notation with the upstream
// 24:00 end-of-day convention, e.g. "10-10-2025 24:30".
var endOfDayRe = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4}) 24:(\d{2})$`)

const (
	// tickThreshold separates tick counters from Unix epoch seconds when a
	// timestamp arrives as a bare number. Ticks for any modern date exceed
	// 6.3e17 (year 1997 onward); no plausible Unix timestamp comes close.
	tickThreshold = 630_000_000_000_000_000

	// unixSecondsThreshold rejects small numerics (row counters, percents)
	// that are not timestamps at all.
	unixSecondsThreshold = 1_000_000_000
)

// Offset-less layouts attempted in order, all interpreted in the default zone.
var localLayouts = []string{
	"2006-01-02T15:04:05", // ISO-8601 without offset
	"2006-01-02T15:04",
	"02-01-2006 15:04", // upstream day-month-year clock
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// NormalizeTimestamp parses an upstream timestamp of unknown shape (string
// or number) into an instant in loc. The second return is false when the
// value carries no timestamp: sentinel tokens, empty strings, and
// unparseable values all yield (zero, false), and the caller must drop the
// record rather than substitute the current time.
func NormalizeTimestamp(raw any, loc *time.Location) (time.Time, bool) {
	switch v := raw.(type) {
	case string:
		return normalizeTimestampString(v, loc)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return timestampFromNumber(n, loc)
		}
		if f, err := v.Float64(); err == nil {
			return timestampFromNumber(int64(f), loc)
		}
		return time.Time{}, false
	case float64:
		return timestampFromNumber(int64(v), loc)
	case int64:
		return timestampFromNumber(v, loc)
	case int:
		return timestampFromNumber(int64(v), loc)
	default:
		return time.Time{}, false
	}
}

func normalizeTimestampString(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if _, ok := timestampSentinels[strings.ToLower(s)]; ok {
		return time.Time{}, false
	}

	// "DD-MM-YYYY 24:MM" means minute MM of hour zero on the following day.
	if m := endOfDayRe.FindStringSubmatch(s); m != nil {
		t, err := time.ParseInLocation("02-01-2006 15:04", m[1]+"-"+m[2]+"-"+m[3]+" 00:"+m[4], loc)
		if err != nil {
			return time.Time{}, false
		}
		return t.AddDate(0, 0, 1), true
	}

	// ISO-8601 with an explicit offset or Z suffix.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}

	// Numeric strings: tick counters or Unix epoch seconds.
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return timestampFromNumber(n, loc)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return timestampFromNumber(int64(f), loc)
	}

	return time.Time{}, false
}

// timestampFromNumber decodes a numeric timestamp: tick counters above
// tickThreshold, Unix epoch seconds above unixSecondsThreshold, nothing
// below that.
func timestampFromNumber(n int64, loc *time.Location) (time.Time, bool) {
	switch {
	case n > tickThreshold:
		return FromTicks(n, loc), true
	case n > unixSecondsThreshold:
		return time.Unix(n, 0).In(loc), true
	default:
		return time.Time{}, false
	}
}
