package rmcab

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const reportPath = "/Report/GetMultiStationsReportNewAsync"

// Client fetches station reports from the RMCAB network API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a report client. The timeout bounds each outbound call
// so a stalled upstream never blocks the orchestrator indefinitely.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchReport calls the report endpoint for one station and window and
// returns the decoded record list. An unrecognized or malformed body is an
// empty list, not an error; transport failures and non-200 statuses are
// returned as errors for the caller to log and treat as "no data".
func (c *Client) FetchReport(ctx context.Context, reportReq ReportRequest) ([]Record, error) {
	u := c.baseURL + reportPath + "?" + BuildParams(reportReq).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create report request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "airq-ingest/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch report for station %d: %w", reportReq.StationID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("report API error: status %d", resp.StatusCode)
	}

	records, ok := DecodeEnvelope(resp.Body)
	if !ok {
		c.logger.Debug("unrecognized report envelope, treating as empty",
			"station_id", reportReq.StationID)
		return nil, nil
	}
	return records, nil
}
