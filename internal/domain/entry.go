package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the settlement state of an entry.
type EntryStatus string

const (
	EntryStatusPending EntryStatus = "pending"
	EntryStatusPaid    EntryStatus = "paid"
)

// Valid reports whether s is a known status.
func (s EntryStatus) Valid() bool {
	return s == EntryStatusPending || s == EntryStatusPaid
}

// Entry is one recorded pint debt between two people.
type Entry struct {
	DateCreated time.Time
	DatePaid    *time.Time
	ID          string
	Debtor      string
	Creditor    string
	Description string
	Amount      decimal.Decimal
	Status      EntryStatus
}

// IsPending reports whether the entry still counts towards balances.
func (e *Entry) IsPending() bool {
	return e.Status == EntryStatusPending
}

// MarkPaid transitions a pending entry to paid. It returns false when the
// entry was already paid; the paid date is never overwritten.
func (e *Entry) MarkPaid(at time.Time) bool {
	if !e.IsPending() {
		return false
	}

	paidAt := at
	e.Status = EntryStatusPaid
	e.DatePaid = &paidAt

	return true
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.DatePaid != nil {
		paidAt := *e.DatePaid
		c.DatePaid = &paidAt
	}
	return &c
}
