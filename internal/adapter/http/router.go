package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/pintwise/internal/adapter/http/handler"
	"github.com/iho/pintwise/internal/adapter/http/middleware"
	"github.com/iho/pintwise/internal/infrastructure/metrics"
	"github.com/iho/pintwise/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryHandler   *handler.EntryHandler
	BalanceHandler *handler.BalanceHandler
	HealthHandler  *handler.HealthHandler

	Logger zerolog.Logger
	// Metrics and Gatherer enable request metrics and the /metrics endpoint.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// Optional.
	RateLimiter      *middleware.RateLimiter
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for POST requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/", cfg.EntryHandler.List)
			r.Get("/pending", cfg.EntryHandler.Pending)
			r.Post("/{id}/pay", cfg.EntryHandler.Pay)
			r.Delete("/{id}", cfg.EntryHandler.Delete)
		})

		r.Get("/balances", cfg.BalanceHandler.Balances)
		r.Get("/stats", cfg.BalanceHandler.Stats)
	})

	return r
}
