package domain

import "github.com/shopspring/decimal"

// Stats summarizes the pints recorded in a set of entries.
type Stats struct {
	Total          decimal.Decimal
	Pending        decimal.Decimal
	Paid           decimal.Decimal
	Entries        int
	PendingEntries int
	PaidEntries    int
}

// Summarize totals the pints of entries by status.
func Summarize(entries []*Entry) Stats {
	s := Stats{
		Total:   decimal.Zero,
		Pending: decimal.Zero,
	}

	for _, e := range entries {
		if e == nil {
			continue
		}
		s.Entries++
		s.Total = s.Total.Add(e.Amount)
		if e.IsPending() {
			s.PendingEntries++
			s.Pending = s.Pending.Add(e.Amount)
		} else {
			s.PaidEntries++
		}
	}

	s.Paid = s.Total.Sub(s.Pending)

	return s
}
