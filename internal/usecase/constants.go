package usecase

import "time"

const (
	// DefaultStoreTimeout bounds a single store call made by a use case.
	DefaultStoreTimeout = 10 * time.Second

	// DefaultBalanceCacheTTL is how long computed net balances are cached.
	DefaultBalanceCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyInProgress marks a claimed idempotency key whose request has
	// not produced a response yet.
	IdempotencyInProgress = "processing"

	// balancesCacheKey prefixes the cache key of the serialized net balances.
	// The ledger version is appended to it.
	balancesCacheKey = "balances:net"

	// balancesVersionKey counts ledger mutations.
	balancesVersionKey = "balances:version"
)

// Store operation names used for error wrapping and metrics.
const (
	opCreate      = "create"
	opListAll     = "list_all"
	opListPending = "list_pending"
	opMarkPaid    = "mark_paid"
	opDelete      = "delete"
)
