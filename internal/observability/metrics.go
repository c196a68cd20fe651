package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingestion pipeline.
type Metrics struct {
	StationsProcessed   prometheus.Counter
	StationsWithoutData prometheus.Counter
	ReadingsPersisted   prometheus.Counter
	RecordsSkipped      *prometheus.CounterVec // labels: reason={timestamp,value,ambiguous_channel}
	FetchErrors         prometheus.Counter
	PersistErrors       prometheus.Counter

	CycleRunning  prometheus.Gauge
	CycleDuration prometheus.Histogram

	// Reading-event publishing metrics.
	ReadingsPublished prometheus.Counter
	PublishErrors     prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.StationsProcessed,
		m.StationsWithoutData,
		m.ReadingsPersisted,
		m.RecordsSkipped,
		m.FetchErrors,
		m.PersistErrors,
		m.CycleRunning,
		m.CycleDuration,
		m.ReadingsPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		StationsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airq_ingest",
			Name:      "stations_processed_total",
			Help:      "Total stations for which a fetch cycle was attempted.",
		}),
		StationsWithoutData: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airq_ingest",
			Name:      "stations_without_data_total",
			Help:      "Total station cycles that ended with no new readings.",
		}),
		ReadingsPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airq_ingest",
			Name:      "readings_persisted_total",
			Help:      "Total readings newly inserted into storage.",
		}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airq_ingest",
			Name:      "records_skipped_total",
			Help:      "Record fields skipped during normalization, by reason.",
		}, []string{"reason"}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airq_ingest",
			Name:      "fetch_errors_total",
			Help:      "Total upstream fetch failures (timeouts, non-200, transport).",
		}),
		PersistErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airq_ingest",
			Name:      "persist_errors_total",
			Help:      "Total rolled-back reading batches.",
		}),
		CycleRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "airq_ingest",
			Name:      "cycle_running",
			Help:      "1 while an ingestion cycle is in progress.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "airq_ingest",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete ingestion cycle over all stations.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		}),
		ReadingsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airq_ingest",
			Name:      "readings_published_total",
			Help:      "Total reading events published to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airq_ingest",
			Name:      "publish_errors_total",
			Help:      "Total failed publishes of reading events.",
		}),
	}
}
