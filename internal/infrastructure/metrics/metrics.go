package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pintwise"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry metrics
	EntriesCreated prometheus.Counter
	EntriesPaid    prometheus.Counter
	EntriesDeleted prometheus.Counter
	PintsCreated   prometheus.Histogram

	// Balance metrics
	NetBalances prometheus.Gauge

	// Store metrics
	StoreErrors *prometheus.CounterVec

	// API metrics
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all metrics and registers them with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		EntriesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_created_total",
			Help:      "Total number of pint entries recorded",
		}),
		EntriesPaid: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_paid_total",
			Help:      "Total number of pint entries marked paid",
		}),
		EntriesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_deleted_total",
			Help:      "Total number of pint entries deleted",
		}),
		PintsCreated: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pints_created",
			Help:      "Pints owed per recorded entry",
			Buckets:   []float64{0.5, 1, 2, 3, 5, 10, 25, 100},
		}),

		NetBalances: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "net_balances",
			Help:      "Number of outstanding net balances at last computation",
		}),

		StoreErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_errors_total",
				Help:      "Total store failures by operation",
			},
			[]string{"operation"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Total requests rejected by the rate limiter",
		}),
	}
}

// EntryCreated implements usecase.MetricsRecorder.
func (m *Metrics) EntryCreated(amount float64) {
	m.EntriesCreated.Inc()
	m.PintsCreated.Observe(amount)
}

// EntryPaid implements usecase.MetricsRecorder.
func (m *Metrics) EntryPaid() {
	m.EntriesPaid.Inc()
}

// EntryDeleted implements usecase.MetricsRecorder.
func (m *Metrics) EntryDeleted() {
	m.EntriesDeleted.Inc()
}

// StoreError implements usecase.MetricsRecorder.
func (m *Metrics) StoreError(operation string) {
	m.StoreErrors.WithLabelValues(operation).Inc()
}

// NetBalancesComputed implements usecase.MetricsRecorder.
func (m *Metrics) NetBalancesComputed(count int) {
	m.NetBalances.Set(float64(count))
}
