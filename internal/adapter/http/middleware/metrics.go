package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iho/pintwise/internal/infrastructure/metrics"
)

const entriesPrefix = "/api/v1/entries/"

// Metrics returns middleware that records HTTP metrics on m.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			m.HTTPRequestsInFlight.Inc()
			defer m.HTTPRequestsInFlight.Dec()

			wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			path := normalizePath(r.URL.Path)

			m.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath replaces entry IDs to keep label cardinality bounded:
// /api/v1/entries/01ABC/pay -> /api/v1/entries/:id/pay
func normalizePath(path string) string {
	rest, ok := strings.CutPrefix(path, entriesPrefix)
	if !ok || rest == "" || rest == "pending" {
		return path
	}

	id, suffix, found := strings.Cut(rest, "/")
	if id == "" {
		return path
	}
	if found {
		return entriesPrefix + ":id/" + suffix
	}
	return entriesPrefix + ":id"
}
