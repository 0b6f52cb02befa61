// Package sqldb stores pint entries through database/sql and the lib/pq
// driver.
package sqldb

import (
	"context"
	"database/sql"
	"time"

	"github.com/iho/pintwise/internal/domain"
	"github.com/iho/pintwise/internal/usecase"
)

const entryColumns = `id, debtor, creditor, description, amount, status, date_created, date_paid`

// EntryRepository implements usecase.EntryStore.
type EntryRepository struct {
	db    *sql.DB
	idGen usecase.IDGenerator
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db *sql.DB, idGen usecase.IDGenerator) *EntryRepository {
	return &EntryRepository{db: db, idGen: idGen}
}

func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	if entry.ID == "" {
		entry.ID = r.idGen.Generate()
	}

	query := `INSERT INTO pint_entries (id, debtor, creditor, description, amount, status, date_created)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Debtor, entry.Creditor, entry.Description,
		entry.Amount, string(entry.Status), entry.DateCreated)
	return err
}

func (r *EntryRepository) ListAll(ctx context.Context) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM pint_entries ORDER BY date_created DESC, id DESC`
	return r.list(ctx, query)
}

func (r *EntryRepository) ListPending(ctx context.Context) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM pint_entries WHERE status = 'pending' ORDER BY date_created DESC, id DESC`
	return r.list(ctx, query)
}

func (r *EntryRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	query := `UPDATE pint_entries SET status = 'paid', date_paid = $2 WHERE id = $1 AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, id, paidAt)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *EntryRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pint_entries WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *EntryRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *EntryRepository) list(ctx context.Context, query string) ([]*domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.Entry{}
	for rows.Next() {
		var (
			e      domain.Entry
			status string
			paid   sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.Debtor, &e.Creditor, &e.Description, &e.Amount, &status, &e.DateCreated, &paid); err != nil {
			return nil, err
		}
		e.Status = domain.EntryStatus(status)
		if paid.Valid {
			t := paid.Time
			e.DatePaid = &t
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
