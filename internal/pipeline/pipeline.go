// Package pipeline orchestrates the fetch-decode-normalize-persist cycle
// over all registered stations.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sincov/airq-ingest-service/internal/adapter/rmcab"
	"github.com/sincov/airq-ingest-service/internal/domain"
	"github.com/sincov/airq-ingest-service/internal/observability"
)

const reportKindAverage = "Average"

// metadataFields are record keys that never carry a measurement.
// Matching is case-insensitive.
var metadataFields = map[string]struct{}{
	"timestamp": {},
	"date":      {},
	"datetime":  {},
	"time":      {},
	"count":     {},
	"id":        {},
	"stationid": {},
}

// ReportFetcher retrieves the decoded record list for one station and window.
type ReportFetcher interface {
	FetchReport(ctx context.Context, req rmcab.ReportRequest) ([]rmcab.Record, error)
}

// ReferenceStore reads the slow-changing station and channel reference data.
type ReferenceStore interface {
	ListStations(ctx context.Context) ([]domain.Station, error)
	ListChannels(ctx context.Context, stationID int64) ([]domain.Channel, error)
}

// ReadingWriter persists a batch of readings, skipping already-present
// (channel, timestamp) pairs, and reports how many rows were newly inserted.
type ReadingWriter interface {
	InsertReadings(ctx context.Context, readings []domain.Reading) (int, error)
}

// ReadingPublisher forwards newly persisted readings to downstream
// consumers. Publishing is best-effort; failures never affect persistence.
type ReadingPublisher interface {
	PublishReadings(ctx context.Context, events []domain.ReadingEvent) error
}

// Pipeline drives one ingestion cycle at a time: for every station, it
// builds candidate windows, fetches and decodes the upstream report,
// normalizes each record, and persists previously-unseen readings.
type Pipeline struct {
	fetcher   ReportFetcher
	store     ReferenceStore
	writer    ReadingWriter
	publisher ReadingPublisher // nil disables publishing
	logger    *slog.Logger
	metrics   *observability.Metrics
	loc       *time.Location

	ready atomic.Bool

	mu          sync.Mutex
	lastSummary domain.CycleSummary
	hasSummary  bool
}

// New creates a Pipeline. publisher may be nil.
func New(fetcher ReportFetcher, store ReferenceStore, writer ReadingWriter, publisher ReadingPublisher,
	logger *slog.Logger, metrics *observability.Metrics, loc *time.Location) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		store:     store,
		writer:    writer,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		loc:       loc,
	}
}

// CheckReadiness returns nil once at least one cycle has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no ingestion cycle has completed yet")
	}
	return nil
}

// LastSummary returns the most recent cycle summary, if any cycle has run.
func (p *Pipeline) LastSummary() (domain.CycleSummary, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastSummary, p.hasSummary
}

// RunCycle executes one ingestion cycle over all stations and returns its
// summary. Only a failure to load the station list (storage lost at cycle
// start) or context cancellation aborts the cycle; every other error is
// contained to its station. Callers must not run two cycles concurrently.
func (p *Pipeline) RunCycle(ctx context.Context, fullBackfill bool) (domain.CycleSummary, error) {
	start := time.Now()
	p.metrics.CycleRunning.Set(1)
	defer p.metrics.CycleRunning.Set(0)

	var summary domain.CycleSummary

	stations, err := p.store.ListStations(ctx)
	if err != nil {
		return summary, fmt.Errorf("load stations: %w", err)
	}
	p.logger.Info("ingestion cycle started", "stations", len(stations), "full_backfill", fullBackfill)

	for _, st := range stations {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		p.processStation(ctx, st, fullBackfill, &summary)
	}

	p.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	p.setSummary(summary)

	p.logger.Info("ingestion cycle complete",
		"stations_processed", summary.StationsProcessed,
		"rows_persisted", summary.RowsPersisted,
		"stations_without_data", summary.StationsWithoutData,
		"errors", summary.Errors,
		"duration", time.Since(start),
	)
	return summary, nil
}

// processStation runs the window fallback strategy for one station. All
// errors are logged and absorbed so the cycle continues with the next
// station.
func (p *Pipeline) processStation(ctx context.Context, st domain.Station, fullBackfill bool, summary *domain.CycleSummary) {
	channels, err := p.store.ListChannels(ctx, st.ID)
	if err != nil {
		p.logger.Error("load channels failed", "station", st.Name, "error", err)
		summary.Errors++
		return
	}

	byCode := make(map[string]domain.Channel, len(channels))
	for _, ch := range channels {
		if ch.Code != "" {
			byCode[ch.Code] = ch
		}
	}
	if len(byCode) == 0 {
		p.logger.Warn("station has no channels with an upstream code, skipping",
			"station", st.Name)
		summary.StationsWithoutData++
		p.metrics.StationsWithoutData.Inc()
		return
	}

	summary.StationsProcessed++
	p.metrics.StationsProcessed.Inc()

	persisted := 0
	for _, window := range CandidateWindows(fullBackfill, p.loc) {
		n, ok := p.tryWindow(ctx, st, byCode, window, summary)
		if !ok {
			return // batch rolled back; do not retry within this cycle
		}
		if n > 0 {
			persisted = n
			break
		}
	}

	if persisted == 0 {
		p.logger.Info("no new data for station in any window", "station", st.Name)
		summary.StationsWithoutData++
		p.metrics.StationsWithoutData.Inc()
		return
	}
	summary.RowsPersisted += persisted
}

// tryWindow fetches one window and persists whatever normalizes cleanly.
// It returns the number of newly inserted rows and false when the station
// should not attempt further windows (persistence failure).
func (p *Pipeline) tryWindow(ctx context.Context, st domain.Station, byCode map[string]domain.Channel,
	window domain.Window, summary *domain.CycleSummary) (int, bool) {

	req := rmcab.ReportRequest{
		StationID:    st.RMCABID,
		StationName:  st.Name,
		ChannelCodes: sortedCodes(byCode),
		Window:       window,
		ReportKind:   reportKindAverage,
	}

	records, err := p.fetcher.FetchReport(ctx, req)
	if err != nil {
		p.logger.Warn("fetch failed, treating window as empty",
			"station", st.Name, "window_from", window.From, "window_to", window.To, "error", err)
		p.metrics.FetchErrors.Inc()
		return 0, true
	}
	if len(records) == 0 {
		return 0, true
	}

	readings, events := p.collectReadings(st, records, byCode)
	if len(readings) == 0 {
		return 0, true
	}

	inserted, err := p.writer.InsertReadings(ctx, readings)
	if err != nil {
		p.logger.Error("persist failed, batch rolled back",
			"station", st.Name, "window_from", window.From, "window_to", window.To, "error", err)
		p.metrics.PersistErrors.Inc()
		summary.Errors++
		return 0, false
	}

	if inserted > 0 {
		p.metrics.ReadingsPersisted.Add(float64(inserted))
		p.publish(ctx, events)
	}
	return inserted, true
}

// collectReadings normalizes decoded records into readings. A record with
// no usable timestamp is dropped whole; individual fields are skipped when
// they resolve to no channel, an ambiguous channel, or an invalid value.
func (p *Pipeline) collectReadings(st domain.Station, records []rmcab.Record,
	byCode map[string]domain.Channel) ([]domain.Reading, []domain.ReadingEvent) {

	var readings []domain.Reading
	var events []domain.ReadingEvent

	for _, rec := range records {
		ts, ok := domain.NormalizeTimestamp(rec["datetime"], p.loc)
		if !ok {
			p.metrics.RecordsSkipped.WithLabelValues("timestamp").Inc()
			continue
		}

		for key, raw := range rec {
			if isMetadataField(key) {
				continue
			}

			ch, res := domain.ResolveChannel(key, byCode)
			switch res {
			case domain.ResolutionNone:
				continue
			case domain.ResolutionAmbiguous:
				p.logger.Warn("field key matches multiple channels, flagged for manual review",
					"station", st.Name, "field", key)
				p.metrics.RecordsSkipped.WithLabelValues("ambiguous_channel").Inc()
				continue
			}

			val, ok := domain.SanitizeValue(raw)
			if !ok {
				p.metrics.RecordsSkipped.WithLabelValues("value").Inc()
				continue
			}

			readings = append(readings, domain.Reading{ChannelID: ch.ID, TakenAt: ts, Value: val})
			events = append(events, domain.ReadingEvent{
				StationID:   st.ID,
				StationName: st.Name,
				ChannelID:   ch.ID,
				ChannelCode: ch.Code,
				Kind:        ch.Kind,
				Unit:        ch.Unit,
				TakenAt:     ts,
				Value:       val,
			})
		}
	}
	return readings, events
}

func (p *Pipeline) publish(ctx context.Context, events []domain.ReadingEvent) {
	if p.publisher == nil || len(events) == 0 {
		return
	}
	if err := p.publisher.PublishReadings(ctx, events); err != nil {
		p.logger.Warn("publish readings failed", "error", err, "events", len(events))
		p.metrics.PublishErrors.Inc()
		return
	}
	p.metrics.ReadingsPublished.Add(float64(len(events)))
}

func (p *Pipeline) setSummary(s domain.CycleSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSummary = s
	p.hasSummary = true
}

func isMetadataField(key string) bool {
	_, ok := metadataFields[strings.ToLower(key)]
	return ok
}

func sortedCodes(byCode map[string]domain.Channel) []string {
	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
