package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateEntryRequest_ToUseCaseInput(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantAmount *decimal.Decimal
	}{
		{
			name: "amount omitted",
			body: `{"debtor":"Alice","creditor":"Bob","description":"quiz"}`,
		},
		{
			name:       "amount as string",
			body:       `{"debtor":"Alice","creditor":"Bob","amount":"2.5"}`,
			wantAmount: decimalPtr("2.5"),
		},
		{
			name:       "amount as number",
			body:       `{"debtor":"Alice","creditor":"Bob","amount":3}`,
			wantAmount: decimalPtr("3"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateEntryRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}

			got := req.ToUseCaseInput()
			if got.Debtor != "Alice" || got.Creditor != "Bob" {
				t.Fatalf("unexpected participants: %+v", got)
			}

			switch {
			case tt.wantAmount == nil && got.Amount != nil:
				t.Fatalf("expected nil amount, got %s", got.Amount)
			case tt.wantAmount != nil && (got.Amount == nil || !got.Amount.Equal(*tt.wantAmount)):
				t.Fatalf("expected amount %s, got %v", tt.wantAmount, got.Amount)
			}
		})
	}
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
