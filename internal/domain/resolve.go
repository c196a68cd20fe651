package domain

import "strings"

// Resolution describes how a response field key was matched to a channel.
type Resolution int

const (
	// ResolvedExact means the field key equalled a channel code.
	ResolvedExact Resolution = iota
	// ResolvedSuffix means the key matched exactly one channel through the
	// suffix heuristic.
	ResolvedSuffix
	// ResolutionAmbiguous means the suffix heuristic matched two or more
	// channels; the field must be skipped and flagged for manual review.
	ResolutionAmbiguous
	// ResolutionNone means no channel matched; the field is ignored.
	ResolutionNone
)

// ResolveChannel maps an upstream field key to a station channel. An exact
// code match always wins. Otherwise any channel whose code's final
// underscore-delimited segment is a suffix of the key is a candidate: a
// single candidate resolves, multiple candidates are reported ambiguous.
// The suffix rule is a best-effort heuristic inherited from irregular
// upstream key formats, not a guaranteed-unique resolver.
func ResolveChannel(fieldKey string, byCode map[string]Channel) (Channel, Resolution) {
	if ch, ok := byCode[fieldKey]; ok {
		return ch, ResolvedExact
	}

	var matches []Channel
	for code, ch := range byCode {
		seg := code
		if i := strings.LastIndex(code, "_"); i >= 0 {
			seg = code[i+1:]
		}
		if seg != "" && strings.HasSuffix(fieldKey, seg) {
			matches = append(matches, ch)
		}
	}

	switch len(matches) {
	case 0:
		return Channel{}, ResolutionNone
	case 1:
		return matches[0], ResolvedSuffix
	default:
		return Channel{}, ResolutionAmbiguous
	}
}
