package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_dashboard"

// Metrics holds the Prometheus collectors for the data pipeline.
type Metrics struct {
	PipelineRuns     *prometheus.CounterVec // labels: outcome={success,error}
	PipelineDuration prometheus.Histogram

	// Source resolution.
	RemoteFetches  *prometheus.CounterVec // labels: format={xml,json}, outcome={ok,not_found,error}
	LocalFallbacks prometheus.Counter
	SourceUp       prometheus.Gauge

	// Parsing.
	ParsedPayloads *prometheus.CounterVec // labels: format={xml,json}
	SkippedRecords prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		PipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Weather data requests by outcome.",
		}, []string{"outcome"}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of a complete resolve-parse-aggregate run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RemoteFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_fetches_total",
			Help:      "Remote record file requests by format and outcome.",
		}, []string{"format", "outcome"}),
		LocalFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "local_fallbacks_total",
			Help:      "Requests served from the local cache directory.",
		}),
		SourceUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_up",
			Help:      "1 when the last probe of the remote source succeeded, 0 otherwise.",
		}),
		ParsedPayloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parsed_payloads_total",
			Help:      "Payloads parsed successfully by detected format.",
		}, []string{"format"}),
		SkippedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_records_total",
			Help:      "Daily records dropped because a reading was not numeric.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PipelineRuns,
		m.PipelineDuration,
		m.RemoteFetches,
		m.LocalFallbacks,
		m.SourceUp,
		m.ParsedPayloads,
		m.SkippedRecords,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many
// as they need without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
