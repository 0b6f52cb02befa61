package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/pintwise/internal/usecase"
)

var _ usecase.MetricsRecorder = (*Metrics)(nil)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.EntriesCreated == nil || m.HTTPRequests == nil || m.StoreErrors == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.StoreError("list_all")

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestRecorderUpdatesMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.EntryCreated(2)
	m.EntryCreated(1)
	m.EntryPaid()
	m.EntryDeleted()
	m.StoreError("mark_paid")
	m.StoreError("mark_paid")
	m.NetBalancesComputed(3)

	if got := testutil.ToFloat64(m.EntriesCreated); got != 2 {
		t.Fatalf("expected 2 created entries, got %v", got)
	}
	if got := testutil.ToFloat64(m.EntriesPaid); got != 1 {
		t.Fatalf("expected 1 paid entry, got %v", got)
	}
	if got := testutil.ToFloat64(m.EntriesDeleted); got != 1 {
		t.Fatalf("expected 1 deleted entry, got %v", got)
	}
	if got := testutil.ToFloat64(m.StoreErrors.WithLabelValues("mark_paid")); got != 2 {
		t.Fatalf("expected 2 store errors, got %v", got)
	}
	if got := testutil.ToFloat64(m.NetBalances); got != 3 {
		t.Fatalf("expected 3 net balances, got %v", got)
	}
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(registry)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected duplicate registration to panic")
		}
	}()
	New(registry)
}
