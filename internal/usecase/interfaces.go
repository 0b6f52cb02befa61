package usecase

import (
	"context"
	"time"

	"github.com/iho/pintwise/internal/domain"
)

// EntryStore persists pint entries. Implementations are interchangeable and
// selected at startup.
type EntryStore interface {
	// Create assigns an ID to entry and persists it.
	Create(ctx context.Context, entry *domain.Entry) error
	// ListAll returns every entry, newest first.
	ListAll(ctx context.Context) ([]*domain.Entry, error)
	// ListPending returns pending entries, newest first.
	ListPending(ctx context.Context) ([]*domain.Entry, error)
	// MarkPaid marks a pending entry as paid. It reports whether a pending
	// entry with that id existed.
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error)
	// Delete removes an entry and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr atomically increments the integer stored at key and returns the
	// new value. A missing key counts as zero.
	Incr(ctx context.Context, key string) (int64, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request may be retried.
	Release(ctx context.Context, key string) error
}

// MetricsRecorder receives ledger events for instrumentation.
type MetricsRecorder interface {
	EntryCreated(amount float64)
	EntryPaid()
	EntryDeleted()
	StoreError(operation string)
	NetBalancesComputed(count int)
}

type noopRecorder struct{}

func (noopRecorder) EntryCreated(float64)    {}
func (noopRecorder) EntryPaid()              {}
func (noopRecorder) EntryDeleted()           {}
func (noopRecorder) StoreError(string)       {}
func (noopRecorder) NetBalancesComputed(int) {}
