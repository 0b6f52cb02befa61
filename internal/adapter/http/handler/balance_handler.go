package handler

import (
	"context"
	"net/http"

	"github.com/iho/pintwise/internal/adapter/http/dto"
	"github.com/iho/pintwise/internal/domain"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	NetBalances(ctx context.Context) ([]domain.NetBalance, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// BalanceHandler serves the derived views.
type BalanceHandler struct {
	balanceUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// Balances returns the net balance per pair of people.
func (h *BalanceHandler) Balances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.balanceUC.NetBalances(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "failed to compute balances")
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromDomain(balances))
}

// Stats returns pint totals.
func (h *BalanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.balanceUC.Stats(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, dto.StatsFromDomain(stats))
}
