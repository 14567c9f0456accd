package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query execution modes reported on query metrics.
const (
	// ModeUnpaginated marks a query executed without pagination
	ModeUnpaginated = "unpaginated"
	// ModeWindow marks a paginated query fused with a window count
	ModeWindow = "window"
	// ModeFallback marks a paginated query split into count + page queries
	ModeFallback = "fallback"
)

// QueryMetrics records execution metrics for composed queries.
type QueryMetrics struct {
	duration *prometheus.HistogramVec
	rows     *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// NewQueryMetrics creates the query collectors. Register them through
// Registry.MustRegister(m.Collectors()...).
func NewQueryMetrics() *QueryMetrics {
	return &QueryMetrics{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "querykit_query_duration_seconds",
				Help:    "Composed query execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"dialect", "mode"},
		),
		rows: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "querykit_query_rows",
				Help:    "Number of rows returned per composed query",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"dialect", "mode"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "querykit_query_errors_total",
				Help: "Total composed query failures",
			},
			[]string{"dialect", "mode"},
		),
	}
}

// Collectors returns the collectors for registry registration.
func (m *QueryMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.duration, m.rows, m.errors}
}

// ObserveQuery records a successful execution.
func (m *QueryMetrics) ObserveQuery(dialect, mode string, elapsed time.Duration, rowCount int) {
	m.duration.WithLabelValues(dialect, mode).Observe(elapsed.Seconds())
	m.rows.WithLabelValues(dialect, mode).Observe(float64(rowCount))
}

// ObserveError records a failed execution.
func (m *QueryMetrics) ObserveError(dialect, mode string) {
	m.errors.WithLabelValues(dialect, mode).Inc()
}
