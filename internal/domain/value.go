package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// valueSentinels are the upstream "no measurement" markers for value fields.
// Keys are lowercase; matching is case-insensitive.
var valueSentinels = map[string]struct{}{
	"----": {},
	"-":    {},
	"n/a":  {},
	"na":   {},
	"null": {},
	"none": {},
}

// maxReadingMagnitude bounds accepted values. It is a guard against upstream
// sentinel numbers (e.g. -9999999), not a physical limit.
const maxReadingMagnitude = 999_999

// SanitizeValue converts a raw field value into a physical measurement.
// It rejects absent and sentinel values, strings that look like times or
// dates (a colon, or two or more hyphens), non-numeric strings, and
// magnitudes at or beyond the sanity bound.
func SanitizeValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return checkMagnitude(v)
	case int:
		return checkMagnitude(float64(v))
	case int64:
		return checkMagnitude(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return checkMagnitude(f)
	case string:
		return sanitizeValueString(v)
	default:
		return 0, false
	}
}

func sanitizeValueString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if _, ok := valueSentinels[strings.ToLower(s)]; ok {
		return 0, false
	}
	// Guard against date/time values leaking into numeric columns.
	if strings.Contains(s, ":") || strings.Count(s, "-") >= 2 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return checkMagnitude(f)
}

func checkMagnitude(v float64) (float64, bool) {
	if v <= -maxReadingMagnitude || v >= maxReadingMagnitude {
		return 0, false
	}
	return v, true
}
