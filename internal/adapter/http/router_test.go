package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/pintwise/internal/adapter/http/dto"
	"github.com/iho/pintwise/internal/adapter/http/handler"
	apimiddleware "github.com/iho/pintwise/internal/adapter/http/middleware"
	"github.com/iho/pintwise/internal/adapter/repository/memory"
	"github.com/iho/pintwise/internal/infrastructure/metrics"
	"github.com/iho/pintwise/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"debtor":"Alice","creditor":"Bob"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.Gatherer = prometheus.NewRegistry()
	}))

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/entries/",
		"GET /api/v1/entries/",
		"GET /api/v1/entries/pending",
		"POST /api/v1/entries/{id}/pay",
		"DELETE /api/v1/entries/{id}",
		"GET /api/v1/balances",
		"GET /api/v1/stats",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestNewRouter_EntryLifecycle(t *testing.T) {
	router := NewRouter(newRouterConfig())

	create := func(body string) (int, dto.EntryResponse) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/entries", strings.NewReader(body)))
		var resp dto.EntryResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		return rec.Code, resp
	}

	code, first := create(`{"debtor":"Alice","creditor":"Bob"}`)
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if code, _ := create(`{"debtor":"Bob","creditor":"Alice","amount":"3"}`); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if code, _ := create(`{"debtor":"Alice","creditor":" Alice "}`); code != http.StatusBadRequest {
		t.Fatalf("expected same-person entry to be rejected, got %d", code)
	}

	var balances dto.BalancesResponse
	getJSON(t, router, "/api/v1/balances", &balances)
	if len(balances.Balances) != 1 {
		t.Fatalf("expected one net balance, got %+v", balances)
	}
	if b := balances.Balances[0]; b.Debtor != "Bob" || b.Creditor != "Alice" || b.Amount.String() != "2" {
		t.Fatalf("expected Bob to owe Alice 2, got %+v", b)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/pay", first.ID), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected pay to succeed, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/pay", first.ID), nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected second pay to report 404, got %d", rec.Code)
	}

	var pending dto.EntryListResponse
	getJSON(t, router, "/api/v1/entries/pending", &pending)
	if pending.Count != 1 {
		t.Fatalf("expected one pending entry, got %d", pending.Count)
	}

	var history dto.EntryListResponse
	getJSON(t, router, "/api/v1/entries?status=paid", &history)
	if history.Count != 1 || history.Entries[0].ID != first.ID {
		t.Fatalf("expected paid entry in history, got %+v", history)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/entries/"+first.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected delete to succeed, got %d", rec.Code)
	}

	var stats dto.StatsResponse
	getJSON(t, router, "/api/v1/stats", &stats)
	if stats.Entries != 1 || stats.Pending.String() != "3" {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func getJSON(t *testing.T, router http.Handler, path string, out any) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s returned %d: %s", path, rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode %s: %v", path, err)
	}
}

type seqID struct{ n atomic.Int64 }

func (s *seqID) Generate() string { return fmt.Sprintf("e-%d", s.n.Add(1)) }

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	store := memory.NewEntryRepository(&seqID{})
	m := metrics.New(prometheus.NewRegistry())

	cfg := RouterConfig{
		EntryHandler:   handler.NewEntryHandler(usecase.NewEntryUseCase(store, usecase.WithMetrics(m))),
		BalanceHandler: handler.NewBalanceHandler(usecase.NewBalanceUseCase(store, usecase.WithMetrics(m))),
		HealthHandler:  handler.NewHealthHandler("memory", store.Ping),
		Logger:         zerolog.Nop(),
		Metrics:        m,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}

func (s *stubIdempotencyStore) Release(ctx context.Context, key string) error {
	return nil
}
