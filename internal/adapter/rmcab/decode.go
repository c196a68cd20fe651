package rmcab

import (
	"encoding/json"
	"io"
)

// Record is one per-timestamp row from a report response. Field values keep
// their wire shape (string or json.Number) for the normalizers to resolve.
type Record map[string]any

// envelopeKeys are the response fields that may carry the record list,
// canonical spelling first.
var envelopeKeys = []string{"Data", "data", "results"}

// DecodeEnvelope extracts the flat record list from a response body of
// unspecified shape: an object holding the list under one of the recognized
// keys, or a bare array. ok reports whether a recognized shape was found;
// malformed bodies and unknown shapes yield (nil, false) and are treated as
// "no data for this window", never as a hard error.
func DecodeEnvelope(r io.Reader) ([]Record, bool) {
	dec := json.NewDecoder(r)
	dec.UseNumber() // keep tick integers bit-exact

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, false
	}

	switch v := body.(type) {
	case map[string]any:
		for _, key := range envelopeKeys {
			if list, ok := v[key].([]any); ok {
				return toRecords(list), true
			}
		}
		return nil, false
	case []any:
		return toRecords(v), true
	default:
		return nil, false
	}
}

// toRecords keeps the object elements of a decoded list and drops anything
// else (nulls, scalars, nested arrays).
func toRecords(list []any) []Record {
	records := make([]Record, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			records = append(records, Record(m))
		}
	}
	return records
}
