package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/pintwise/internal/adapter/http/dto"
	"github.com/iho/pintwise/internal/domain"
	"github.com/iho/pintwise/internal/usecase"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	AddEntry(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.Entry, error)
	ListPending(ctx context.Context, query string) ([]*domain.Entry, error)
	MarkPaid(ctx context.Context, id string) error
	DeleteEntry(ctx context.Context, id string) error
}

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	entryUC EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Create records a new pending entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.entryUC.AddEntry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err, "failed to create entry")
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// List lists entries, optionally filtered by ?status= and ?q=.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, r, err, "failed to list entries")
		return
	}

	entries, err := h.entryUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		Status: status,
		Query:  r.URL.Query().Get("q"),
	})
	if err != nil {
		writeDomainError(w, r, err, "failed to list entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewEntryListResponse(entries))
}

// Pending lists pending entries, optionally filtered by ?q=.
func (h *EntryHandler) Pending(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entryUC.ListPending(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, r, err, "failed to list pending entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewEntryListResponse(entries))
}

// Pay marks an entry as paid.
func (h *EntryHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	if err := h.entryUC.MarkPaid(r.Context(), id); err != nil {
		writeDomainError(w, r, err, "failed to mark entry paid")
		return
	}

	writeJSON(w, http.StatusOK, dto.PaidResponse{ID: id, Paid: true})
}

// Delete removes an entry.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	if err := h.entryUC.DeleteEntry(r.Context(), id); err != nil {
		writeDomainError(w, r, err, "failed to delete entry")
		return
	}

	writeJSON(w, http.StatusOK, dto.DeletedResponse{ID: id, Deleted: true})
}
