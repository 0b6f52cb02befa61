package postgrest

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pintwise/internal/domain"
	"github.com/iho/pintwise/internal/usecase"
)

const listOrder = "date_created.desc,id.desc"

type entryRow struct {
	ID          string          `json:"id"`
	Debtor      string          `json:"debtor"`
	Creditor    string          `json:"creditor"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	DateCreated time.Time       `json:"date_created"`
	DatePaid    *time.Time      `json:"date_paid"`
}

func (r entryRow) toDomain() *domain.Entry {
	return &domain.Entry{
		ID:          r.ID,
		Debtor:      r.Debtor,
		Creditor:    r.Creditor,
		Description: r.Description,
		Amount:      r.Amount,
		Status:      domain.EntryStatus(r.Status),
		DateCreated: r.DateCreated,
		DatePaid:    r.DatePaid,
	}
}

// EntryRepository implements usecase.EntryStore over PostgREST.
type EntryRepository struct {
	client *Client
	idGen  usecase.IDGenerator
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(client *Client, idGen usecase.IDGenerator) *EntryRepository {
	return &EntryRepository{client: client, idGen: idGen}
}

func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	if entry.ID == "" {
		entry.ID = r.idGen.Generate()
	}

	row := entryRow{
		ID:          entry.ID,
		Debtor:      entry.Debtor,
		Creditor:    entry.Creditor,
		Description: entry.Description,
		Amount:      entry.Amount,
		Status:      string(entry.Status),
		DateCreated: entry.DateCreated,
	}

	var created []entryRow
	if err := r.client.do(ctx, http.MethodPost, nil, row, &created); err != nil {
		return err
	}
	if len(created) > 0 {
		entry.DateCreated = created[0].DateCreated
	}

	return nil
}

func (r *EntryRepository) ListAll(ctx context.Context) ([]*domain.Entry, error) {
	return r.list(ctx, url.Values{
		"select": {"*"},
		"order":  {listOrder},
	})
}

func (r *EntryRepository) ListPending(ctx context.Context) ([]*domain.Entry, error) {
	return r.list(ctx, url.Values{
		"select": {"*"},
		"status": {"eq." + string(domain.EntryStatusPending)},
		"order":  {listOrder},
	})
}

func (r *EntryRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	query := url.Values{
		"id":     {"eq." + id},
		"status": {"eq." + string(domain.EntryStatusPending)},
	}
	patch := map[string]any{
		"status":    domain.EntryStatusPaid,
		"date_paid": paidAt,
	}

	var updated []entryRow
	if err := r.client.do(ctx, http.MethodPatch, query, patch, &updated); err != nil {
		return false, err
	}

	return len(updated) > 0, nil
}

func (r *EntryRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted []entryRow
	if err := r.client.do(ctx, http.MethodDelete, url.Values{"id": {"eq." + id}}, nil, &deleted); err != nil {
		return false, err
	}

	return len(deleted) > 0, nil
}

// Ping issues a minimal read to verify the endpoint and credentials.
func (r *EntryRepository) Ping(ctx context.Context) error {
	var rows []entryRow
	return r.client.do(ctx, http.MethodGet, url.Values{"select": {"id"}, "limit": {"1"}}, nil, &rows)
}

func (r *EntryRepository) list(ctx context.Context, query url.Values) ([]*domain.Entry, error) {
	var rows []entryRow
	if err := r.client.get(ctx, query, &rows); err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toDomain())
	}

	return entries, nil
}
