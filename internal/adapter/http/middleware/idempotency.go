package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/iho/pintwise/internal/usecase"
)

// IdempotencyKeyHeader is the header name for idempotency keys.
const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyReplayHeader marks a response served from the idempotency store.
const IdempotencyReplayHeader = "X-Idempotency-Replay"

// cachedResponse is what gets stored for a completed request.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body"`
}

// IdempotencyMiddleware replays the first successful response of a POST
// request for every retry carrying the same Idempotency-Key.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. A
// non-positive ttl uses usecase.IdempotencyKeyTTL.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

// idempotencyKey scopes the client key to the route so the same key can be
// reused for a different endpoint.
func idempotencyKey(r *http.Request, clientKey string) string {
	return r.Method + " " + r.URL.Path + " " + clientKey
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientKey := r.Header.Get(IdempotencyKeyHeader)
		if r.Method != http.MethodPost || clientKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		key := idempotencyKey(r, clientKey)
		logger := hlog.FromRequest(r).With().Str("idempotency_key", clientKey).Logger()

		exists, cached, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			logger.Error().Err(err).Msg("idempotency check failed")
			writeError(w, http.StatusServiceUnavailable, "idempotency store unavailable")
			return
		}
		if exists {
			replay(w, cached)
			return
		}

		// Settled even when the client has gone away or the handler panics.
		storeCtx := context.WithoutCancel(r.Context())
		rec := &bodyRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		completed := false
		defer func() {
			if !completed {
				m.release(storeCtx, key, logger)
			}
		}()

		next.ServeHTTP(rec, r)
		completed = true

		if rec.statusCode < 200 || rec.statusCode >= 300 {
			m.release(storeCtx, key, logger)
			return
		}

		payload, err := json.Marshal(cachedResponse{
			Status:      rec.statusCode,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err == nil {
			err = m.store.Update(storeCtx, key, payload, m.ttl)
		}
		if err != nil {
			logger.Warn().Err(err).Msg("failed to store idempotent response")
		}
	})
}

func (m *IdempotencyMiddleware) release(ctx context.Context, key string, logger zerolog.Logger) {
	if err := m.store.Release(ctx, key); err != nil {
		logger.Warn().Err(err).Msg("failed to release idempotency key")
	}
}

func replay(w http.ResponseWriter, cached []byte) {
	var resp cachedResponse
	if string(cached) == usecase.IdempotencyInProgress || json.Unmarshal(cached, &resp) != nil {
		writeError(w, http.StatusConflict, "request with this idempotency key is in progress")
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set(IdempotencyReplayHeader, "true")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

// bodyRecorder passes the response through while keeping a copy.
type bodyRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
