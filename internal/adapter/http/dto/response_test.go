package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pintwise/internal/domain"
)

func TestEntryFromDomain(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	entry := &domain.Entry{
		ID:          "e-1",
		Debtor:      "Alice",
		Creditor:    "Bob",
		Description: "darts",
		Amount:      decimal.RequireFromString("1.5"),
		Status:      domain.EntryStatusPending,
		DateCreated: now,
	}

	resp := EntryFromDomain(entry)
	if resp.ID != "e-1" || resp.Status != "pending" || !resp.Amount.Equal(entry.Amount) {
		t.Fatalf("unexpected entry response: %+v", resp)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	if strings.Contains(string(body), "date_paid") {
		t.Fatalf("expected pending entry to omit date_paid, got %s", body)
	}
	if !strings.Contains(string(body), `"amount":"1.5"`) {
		t.Fatalf("expected decimal amount string, got %s", body)
	}
}

func TestNewEntryListResponse(t *testing.T) {
	list := NewEntryListResponse([]*domain.Entry{})
	if list.Count != 0 || list.Entries == nil {
		t.Fatalf("expected empty non-nil list, got %+v", list)
	}

	body, _ := json.Marshal(list)
	if string(body) != `{"entries":[],"count":0}` {
		t.Fatalf("unexpected JSON %s", body)
	}
}

func TestBalancesFromDomain(t *testing.T) {
	resp := BalancesFromDomain([]domain.NetBalance{
		{Debtor: "Alice", Creditor: "Bob", Amount: decimal.NewFromInt(2)},
	})

	if len(resp.Balances) != 1 || resp.Balances[0].Debtor != "Alice" || !resp.Balances[0].Amount.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("unexpected balances: %+v", resp)
	}

	empty := BalancesFromDomain(nil)
	body, _ := json.Marshal(empty)
	if string(body) != `{"balances":[]}` {
		t.Fatalf("expected empty balances array, got %s", body)
	}
}

func TestStatsFromDomain(t *testing.T) {
	resp := StatsFromDomain(domain.Stats{
		Total:          decimal.NewFromInt(5),
		Pending:        decimal.NewFromInt(3),
		Paid:           decimal.NewFromInt(2),
		Entries:        4,
		PendingEntries: 3,
		PaidEntries:    1,
	})

	if resp.Entries != 4 || !resp.Paid.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("unexpected stats response: %+v", resp)
	}
}
