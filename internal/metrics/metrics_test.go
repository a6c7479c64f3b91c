package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSourceLoad("http", "ok", 10*time.Millisecond)
	m.ObserveSourceLoad("http", "error", time.Millisecond)
	m.ObserveDerive("name", time.Microsecond)
	m.SetSnapshotRecords(10)
	m.IncrementExport("pdf")

	if got := testutil.ToFloat64(m.SourceLoads.WithLabelValues("http", "ok")); got != 1 {
		t.Fatalf("ok loads: %v", got)
	}
	if got := testutil.ToFloat64(m.Derivations.WithLabelValues("name")); got != 1 {
		t.Fatalf("derivations: %v", got)
	}
	if got := testutil.ToFloat64(m.SnapshotRecords); got != 10 {
		t.Fatalf("snapshot records: %v", got)
	}
	if got := testutil.ToFloat64(m.ExportsRendered.WithLabelValues("pdf")); got != 1 {
		t.Fatalf("exports: %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveSourceLoad("http", "ok", time.Second)
	m.ObserveDerive("name", time.Second)
	m.SetSnapshotRecords(1)
	m.IncrementExport("pdf")
}
