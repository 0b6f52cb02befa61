package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/pintwise/internal/domain"
)

// EntryUseCase handles entry business logic.
type EntryUseCase struct {
	store    EntryStore
	inflight *inflight
	opts     options
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(store EntryStore, opts ...Option) *EntryUseCase {
	return &EntryUseCase{
		store:    store,
		inflight: newInflight(),
		opts:     newOptions(opts),
	}
}

// AddEntryInput represents input for recording a new debt.
type AddEntryInput struct {
	Debtor      string
	Creditor    string
	Description string
	// Amount defaults to one pint when nil.
	Amount *decimal.Decimal
}

// AddEntry validates and records a new pending entry.
func (uc *EntryUseCase) AddEntry(ctx context.Context, input AddEntryInput) (*domain.Entry, error) {
	amount := domain.DefaultEntryAmount
	if input.Amount != nil {
		amount = *input.Amount
	}

	entry := &domain.Entry{
		Debtor:      domain.NormalizeName(input.Debtor),
		Creditor:    domain.NormalizeName(input.Creditor),
		Description: strings.TrimSpace(input.Description),
		Amount:      amount,
		Status:      domain.EntryStatusPending,
		DateCreated: uc.opts.now(),
	}

	if err := domain.ValidateNewEntry(entry); err != nil {
		return nil, err
	}

	storeCtx, cancel := uc.opts.storeContext(ctx)
	defer cancel()

	if err := uc.store.Create(storeCtx, entry); err != nil {
		return nil, uc.opts.storeFailure(opCreate, err)
	}

	uc.opts.metrics.EntryCreated(entry.Amount.InexactFloat64())
	uc.opts.invalidateBalances(ctx)

	return entry, nil
}

// ListEntriesInput represents input for listing entries.
type ListEntriesInput struct {
	// Status restricts the result; empty means every status.
	Status domain.EntryStatus
	// Query is matched against names and descriptions.
	Query string
}

// ListEntries lists entries newest first.
func (uc *EntryUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.Entry, error) {
	if input.Status != "" && !input.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	storeCtx, cancel := uc.opts.storeContext(ctx)
	defer cancel()

	var (
		entries []*domain.Entry
		err     error
	)
	if input.Status == domain.EntryStatusPending {
		entries, err = uc.store.ListPending(storeCtx)
		if err != nil {
			return nil, uc.opts.storeFailure(opListPending, err)
		}
	} else {
		entries, err = uc.store.ListAll(storeCtx)
		if err != nil {
			return nil, uc.opts.storeFailure(opListAll, err)
		}
	}

	return domain.FilterEntries(entries, input.Status, input.Query), nil
}

// ListPending lists pending entries newest first.
func (uc *EntryUseCase) ListPending(ctx context.Context, query string) ([]*domain.Entry, error) {
	return uc.ListEntries(ctx, ListEntriesInput{Status: domain.EntryStatusPending, Query: query})
}

// MarkPaid settles a pending entry.
func (uc *EntryUseCase) MarkPaid(ctx context.Context, id string) error {
	return uc.mutate(ctx, id, func(ctx context.Context) error {
		ok, err := uc.store.MarkPaid(ctx, id, uc.opts.now())
		if err != nil {
			return uc.opts.storeFailure(opMarkPaid, err)
		}
		if !ok {
			return domain.ErrEntryNotFound
		}

		uc.opts.metrics.EntryPaid()
		return nil
	})
}

// DeleteEntry removes an entry regardless of its status.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, id string) error {
	return uc.mutate(ctx, id, func(ctx context.Context) error {
		ok, err := uc.store.Delete(ctx, id)
		if err != nil {
			return uc.opts.storeFailure(opDelete, err)
		}
		if !ok {
			return domain.ErrEntryNotFound
		}

		uc.opts.metrics.EntryDeleted()
		return nil
	})
}

// mutate runs fn while holding the in-flight claim on id. A concurrent
// mutation of the same id fails with domain.ErrEntryBusy.
func (uc *EntryUseCase) mutate(ctx context.Context, id string, fn func(ctx context.Context) error) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrEntryNotFound
	}

	if !uc.inflight.acquire(id) {
		return domain.ErrEntryBusy
	}
	defer uc.inflight.release(id)

	storeCtx, cancel := uc.opts.storeContext(ctx)
	defer cancel()

	if err := fn(storeCtx); err != nil {
		return err
	}

	uc.opts.invalidateBalances(ctx)

	return nil
}
