package rmcab

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sincov/airq-ingest-service/internal/domain"
)

// ReportRequest describes one fetch against the multi-station report endpoint.
type ReportRequest struct {
	StationID    int64 // upstream station identifier
	StationName  string
	ChannelCodes []string
	Window       domain.Window
	ReportKind   string // e.g. "Average"

	// Take and PageSize control upstream pagination. Zero requests the full
	// result set; the API silently truncates when asked for fewer rows than
	// exist, so callers must not default these to a small page.
	Take     int
	PageSize int
}

// BuildParams produces the exact query parameters the report endpoint
// expects: the station id as a single-element list literal, channel codes
// and granularity as compact JSON list strings, and the window bounds as
// tick integers.
func BuildParams(req ReportRequest) url.Values {
	granularity := strconv.Itoa(req.Window.Granularity)

	params := url.Values{}
	params.Set("ListStationId", fmt.Sprintf("[%d]", req.StationID))
	params.Set("ListMonitorIds", compactList(req.ChannelCodes))
	params.Set("FDate", strconv.FormatInt(domain.ToTicks(req.Window.From), 10))
	params.Set("TDate", strconv.FormatInt(domain.ToTicks(req.Window.To), 10))
	params.Set("TB", compactList([]string{granularity}))
	params.Set("ToTB", granularity) // the API redundantly expects a scalar echo
	params.Set("ReportType", req.ReportKind)
	params.Set("first", "true")
	params.Set("take", strconv.Itoa(req.Take))
	params.Set("skip", "0")
	params.Set("page", "1")
	params.Set("pageSize", strconv.Itoa(req.PageSize))

	if req.StationName != "" {
		params.Set("ListStationsNames", compactList([]string{req.StationName}))
	}

	return params
}

// compactList renders a string slice as a JSON list literal with no
// whitespace, the encoding the upstream API parses.
func compactList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		// A []string cannot fail to marshal.
		return "[]"
	}
	return string(b)
}
