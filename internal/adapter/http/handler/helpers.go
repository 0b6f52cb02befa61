package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/iho/pintwise/internal/adapter/http/dto"
	"github.com/iho/pintwise/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEntryBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError maps err and writes it. Store and unexpected failures are
// logged and their details withheld from the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := mapDomainError(err)

	switch status {
	case http.StatusBadRequest:
		writeError(w, status, "validation failed", err.Error())
	case http.StatusNotFound:
		writeError(w, status, "entry not found", "")
	case http.StatusConflict:
		writeError(w, status, "entry busy", err.Error())
	case http.StatusServiceUnavailable:
		hlog.FromRequest(r).Error().Err(err).Msg("store failure")
		writeError(w, status, "store unavailable", "")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg(fallback)
		writeError(w, status, fallback, "")
	}
}
