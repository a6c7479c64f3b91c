package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the dashboard backend.
type Metrics struct {
	// Record source loads by source name and outcome
	SourceLoads   *prometheus.CounterVec
	SourceLatency *prometheus.HistogramVec

	// Records held by the current snapshot
	SnapshotRecords prometheus.Gauge

	// Table derivations by sort key
	Derivations     *prometheus.CounterVec
	DeriveLatency   prometheus.Histogram
	ExportsRendered *prometheus.CounterVec
}

// New creates a Metrics instance registered on reg. A nil reg uses the
// default Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		SourceLoads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_source_loads_total",
			Help: "Record source loads by source and outcome",
		}, []string{"source", "outcome"}), // outcome: "ok", "error", "store"

		SourceLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_source_load_duration_seconds",
			Help:    "Duration of record source loads",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),

		SnapshotRecords: f.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_snapshot_records",
			Help: "Number of records in the current users snapshot",
		}),

		Derivations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_view_derivations_total",
			Help: "Users table derivations by sort key",
		}, []string{"sort_key"}),

		DeriveLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_view_derive_duration_seconds",
			Help:    "Duration of search, sort and page derivation",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),

		ExportsRendered: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_exports_total",
			Help: "Rendered table exports by format",
		}, []string{"format"}),
	}
}

// ObserveSourceLoad records one load attempt against a record source.
func (m *Metrics) ObserveSourceLoad(source, outcome string, d time.Duration) {
	if m != nil {
		m.SourceLoads.WithLabelValues(source, outcome).Inc()
		m.SourceLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// SetSnapshotRecords records the size of the snapshot being served.
func (m *Metrics) SetSnapshotRecords(n int) {
	if m != nil {
		m.SnapshotRecords.Set(float64(n))
	}
}

// ObserveDerive records one users table derivation.
func (m *Metrics) ObserveDerive(sortKey string, d time.Duration) {
	if m != nil {
		m.Derivations.WithLabelValues(sortKey).Inc()
		m.DeriveLatency.Observe(d.Seconds())
	}
}

// IncrementExport records a rendered export.
func (m *Metrics) IncrementExport(format string) {
	if m != nil {
		m.ExportsRendered.WithLabelValues(format).Inc()
	}
}
