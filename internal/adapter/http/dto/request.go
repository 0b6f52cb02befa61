package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/pintwise/internal/usecase"
)

// CreateEntryRequest represents a request to record a pint debt.
type CreateEntryRequest struct {
	Debtor      string `json:"debtor"`
	Creditor    string `json:"creditor"`
	Description string `json:"description,omitempty"`
	// Amount defaults to one pint when omitted.
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() usecase.AddEntryInput {
	return usecase.AddEntryInput{
		Debtor:      r.Debtor,
		Creditor:    r.Creditor,
		Description: r.Description,
		Amount:      r.Amount,
	}
}
