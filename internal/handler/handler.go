package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"konaseema-kart/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// CatalogSource provides the normalized catalogue. Both handler lookups and
// cart adds resolve items through it.
type CatalogSource interface {
	Products(ctx context.Context) ([]model.CatalogItem, error)
	Combos(ctx context.Context) ([]model.CatalogItem, error)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError writes a business-rule failure with its error code.
func writeDomainError(w http.ResponseWriter, status int, derr *model.DomainError, logger zerolog.Logger) {
	logger.Debug().Str("code", derr.Code).Str("error", derr.Message).Int("status", status).Msg("domain error")
	writeJSON(w, status, ErrorResponse{Error: derr.Message, Code: derr.Code})
}

// sessionID identifies the customer session carrying the cart. Anonymous
// visitors without the header share the fallback session.
func sessionID(r *http.Request) string {
	if s := r.Header.Get("X-Session-ID"); s != "" {
		return s
	}
	return "anonymous"
}
