package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/pintwise/internal/domain"
	"github.com/iho/pintwise/internal/infrastructure/postgres/generated"
	"github.com/iho/pintwise/internal/usecase"
)

type pgxPool interface {
	generated.DBTX
	Ping(ctx context.Context) error
}

// EntryRepository implements usecase.EntryStore on top of pgx.
type EntryRepository struct {
	pool    pgxPool
	queries *generated.Queries
	idGen   usecase.IDGenerator
	retrier *Retrier
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator, retrier *Retrier) *EntryRepository {
	return newEntryRepositoryWithPool(pool, idGen, retrier)
}

func newEntryRepositoryWithPool(pool pgxPool, idGen usecase.IDGenerator, retrier *Retrier) *EntryRepository {
	if retrier == nil {
		retrier = NewRetrier()
	}

	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
		idGen:   idGen,
		retrier: retrier,
	}
}

// Create inserts entry, assigning an ID when it has none.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	if entry.ID == "" {
		entry.ID = r.idGen.Generate()
	}

	return r.retrier.Retry(ctx, "create", func() error {
		row, err := r.queries.CreatePintEntry(ctx, generated.CreatePintEntryParams{
			ID:          entry.ID,
			Debtor:      entry.Debtor,
			Creditor:    entry.Creditor,
			Description: entry.Description,
			Amount:      decimalToNumeric(entry.Amount),
			Status:      string(entry.Status),
			DateCreated: timeToPgTimestamptz(entry.DateCreated),
		})
		if err != nil {
			return err
		}

		entry.DateCreated = row.DateCreated.Time

		return nil
	})
}

// ListAll returns every entry, newest first.
func (r *EntryRepository) ListAll(ctx context.Context) ([]*domain.Entry, error) {
	rows, err := r.queries.ListPintEntries(ctx)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// ListPending returns pending entries, newest first.
func (r *EntryRepository) ListPending(ctx context.Context) ([]*domain.Entry, error) {
	rows, err := r.queries.ListPendingPintEntries(ctx)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// MarkPaid marks a pending entry as paid.
func (r *EntryRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	var affected int64

	err := r.retrier.Retry(ctx, "mark_paid", func() error {
		var err error
		affected, err = r.queries.MarkPintEntryPaid(ctx, generated.MarkPintEntryPaidParams{
			ID:       id,
			DatePaid: timeToPgTimestamptz(paidAt),
		})
		return err
	})
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64

	err := r.retrier.Retry(ctx, "delete", func() error {
		var err error
		affected, err = r.queries.DeletePintEntry(ctx, id)
		return err
	})
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Ping checks database connectivity.
func (r *EntryRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
