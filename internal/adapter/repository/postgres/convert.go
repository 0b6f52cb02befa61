package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/pintwise/internal/domain"
	"github.com/iho/pintwise/internal/infrastructure/postgres/generated"
)

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func rowToEntry(row generated.PintEntry) *domain.Entry {
	entry := &domain.Entry{
		ID:          row.ID,
		Debtor:      row.Debtor,
		Creditor:    row.Creditor,
		Description: row.Description,
		Amount:      numericToDecimal(row.Amount),
		Status:      domain.EntryStatus(row.Status),
		DateCreated: row.DateCreated.Time,
	}
	if row.DatePaid.Valid {
		paid := row.DatePaid.Time
		entry.DatePaid = &paid
	}

	return entry
}

func rowsToEntries(rows []generated.PintEntry) []*domain.Entry {
	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries
}
