package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/pintwise/internal/domain"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Option configures the ledger use cases.
type Option func(*options)

type options struct {
	cache        Cache
	cacheTTL     time.Duration
	metrics      MetricsRecorder
	logger       zerolog.Logger
	now          func() time.Time
	storeTimeout time.Duration
}

func newOptions(opts []Option) options {
	o := options{
		cacheTTL:     DefaultBalanceCacheTTL,
		metrics:      noopRecorder{},
		logger:       zerolog.Nop(),
		now:          func() time.Time { return time.Now().UTC() },
		storeTimeout: DefaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCache caches computed net balances for ttl. A non-positive ttl keeps
// the default.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(o *options) {
		o.cache = cache
		if ttl > 0 {
			o.cacheTTL = ttl
		}
	}
}

// WithMetrics records ledger events on m.
func WithMetrics(m MetricsRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithLogger sets the logger used for non-fatal failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithStoreTimeout bounds every store call.
func WithStoreTimeout(d time.Duration) Option {
	return func(o *options) {
		o.storeTimeout = d
	}
}

func (o *options) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.storeTimeout)
}

// storeFailure records and wraps an error returned by the store.
func (o *options) storeFailure(op string, err error) error {
	o.metrics.StoreError(op)
	return fmt.Errorf("%w: %s: %w", domain.ErrStore, op, err)
}

// invalidateBalances bumps the ledger version so balances cached for an
// earlier version are no longer read. It runs after the store write has
// succeeded, so it must not be skipped when the caller goes away.
func (o *options) invalidateBalances(ctx context.Context) {
	if o.cache == nil {
		return
	}
	if _, err := o.cache.Incr(context.WithoutCancel(ctx), balancesVersionKey); err != nil {
		o.logger.Warn().Err(err).Msg("failed to invalidate cached balances")
	}
}
