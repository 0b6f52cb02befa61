package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iho/pintwise/internal/adapter/http/dto"
)

// writeError writes an API-shaped JSON error from middleware.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: message})
}
