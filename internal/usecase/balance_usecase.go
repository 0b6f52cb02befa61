package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/iho/pintwise/internal/domain"
)

// BalanceUseCase derives net balances and totals from the stored entries.
type BalanceUseCase struct {
	store EntryStore
	opts  options
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(store EntryStore, opts ...Option) *BalanceUseCase {
	return &BalanceUseCase{
		store: store,
		opts:  newOptions(opts),
	}
}

// NetBalances loads every entry and reduces the pending ones to net debts.
func (uc *BalanceUseCase) NetBalances(ctx context.Context) ([]domain.NetBalance, error) {
	key, cacheable := uc.balancesKey(ctx)
	if cacheable {
		if cached, ok := uc.cachedBalances(ctx, key); ok {
			return cached, nil
		}
	}

	entries, err := uc.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	balances := domain.ComputeNetBalances(entries)
	uc.opts.metrics.NetBalancesComputed(len(balances))
	if cacheable {
		uc.storeBalances(ctx, key, balances)
	}

	return balances, nil
}

// Stats totals the pints recorded across all entries.
func (uc *BalanceUseCase) Stats(ctx context.Context) (domain.Stats, error) {
	entries, err := uc.loadAll(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	return domain.Summarize(entries), nil
}

func (uc *BalanceUseCase) loadAll(ctx context.Context) ([]*domain.Entry, error) {
	storeCtx, cancel := uc.opts.storeContext(ctx)
	defer cancel()

	entries, err := uc.store.ListAll(storeCtx)
	if err != nil {
		return nil, uc.opts.storeFailure(opListAll, err)
	}

	return entries, nil
}

// balancesKey returns the cache key for the current ledger version. The
// version is read before the store, so balances computed while a mutation
// lands are written under a version nobody reads any more.
func (uc *BalanceUseCase) balancesKey(ctx context.Context) (string, bool) {
	if uc.opts.cache == nil {
		return "", false
	}

	var version int64
	data, err := uc.opts.cache.Get(ctx, balancesVersionKey)
	switch {
	case errors.Is(err, ErrCacheMiss):
	case err != nil:
		uc.opts.logger.Warn().Err(err).Msg("failed to read ledger version, bypassing balance cache")
		return "", false
	default:
		version, err = strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			uc.opts.logger.Warn().Err(err).Msg("malformed ledger version, bypassing balance cache")
			return "", false
		}
	}

	return balancesCacheKey + ":" + strconv.FormatInt(version, 10), true
}

func (uc *BalanceUseCase) cachedBalances(ctx context.Context, key string) ([]domain.NetBalance, bool) {
	data, err := uc.opts.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.opts.logger.Warn().Err(err).Msg("failed to read cached balances")
		}
		return nil, false
	}

	var balances []domain.NetBalance
	if err := json.Unmarshal(data, &balances); err != nil {
		uc.opts.logger.Warn().Err(err).Msg("discarding malformed cached balances")
		return nil, false
	}

	return balances, true
}

func (uc *BalanceUseCase) storeBalances(ctx context.Context, key string, balances []domain.NetBalance) {
	data, err := json.Marshal(balances)
	if err != nil {
		uc.opts.logger.Warn().Err(err).Msg("failed to encode balances for cache")
		return
	}

	if err := uc.opts.cache.Set(ctx, key, data, uc.opts.cacheTTL); err != nil {
		uc.opts.logger.Warn().Err(err).Msg("failed to cache balances")
	}
}
