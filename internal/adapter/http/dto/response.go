package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pintwise/internal/domain"
)

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	Debtor      string          `json:"debtor"`
	Creditor    string          `json:"creditor"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	DateCreated time.Time       `json:"date_created"`
	DatePaid    *time.Time      `json:"date_paid,omitempty"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		Debtor:      e.Debtor,
		Creditor:    e.Creditor,
		Description: e.Description,
		Amount:      e.Amount,
		Status:      string(e.Status),
		DateCreated: e.DateCreated,
		DatePaid:    e.DatePaid,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// EntryListResponse wraps a list of entries.
type EntryListResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Count   int              `json:"count"`
}

// NewEntryListResponse builds an EntryListResponse.
func NewEntryListResponse(entries []*domain.Entry) *EntryListResponse {
	return &EntryListResponse{
		Entries: EntriesFromDomain(entries),
		Count:   len(entries),
	}
}

// PaidResponse acknowledges a settled entry.
type PaidResponse struct {
	ID   string `json:"id"`
	Paid bool   `json:"paid"`
}

// DeletedResponse acknowledges a removed entry.
type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// NetBalanceResponse represents one outstanding net debt.
type NetBalanceResponse struct {
	Debtor   string          `json:"debtor"`
	Creditor string          `json:"creditor"`
	Amount   decimal.Decimal `json:"amount"`
}

// BalancesResponse wraps the net balances view.
type BalancesResponse struct {
	Balances []NetBalanceResponse `json:"balances"`
}

// BalancesFromDomain converts net balances to a response.
func BalancesFromDomain(balances []domain.NetBalance) *BalancesResponse {
	result := make([]NetBalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = NetBalanceResponse{
			Debtor:   b.Debtor,
			Creditor: b.Creditor,
			Amount:   b.Amount,
		}
	}
	return &BalancesResponse{Balances: result}
}

// StatsResponse represents pint totals.
type StatsResponse struct {
	Total          decimal.Decimal `json:"total"`
	Pending        decimal.Decimal `json:"pending"`
	Paid           decimal.Decimal `json:"paid"`
	Entries        int             `json:"entries"`
	PendingEntries int             `json:"pending_entries"`
	PaidEntries    int             `json:"paid_entries"`
}

// StatsFromDomain converts stats to a response.
func StatsFromDomain(s domain.Stats) *StatsResponse {
	return &StatsResponse{
		Total:          s.Total,
		Pending:        s.Pending,
		Paid:           s.Paid,
		Entries:        s.Entries,
		PendingEntries: s.PendingEntries,
		PaidEntries:    s.PaidEntries,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
