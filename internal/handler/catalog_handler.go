package handler

import (
	"net/http"

	"github.com/rs/zerolog"
)

// CatalogHandler handles catalogue browsing requests.
type CatalogHandler struct {
	source CatalogSource
	logger zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(source CatalogSource, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		source: source,
		logger: logger.With().Str("handler", "catalog").Logger(),
	}
}

// Products handles GET /api/products requests.
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	items, err := h.source.Products(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("products feed fetch failed")
		writeError(w, http.StatusBadGateway, "failed to fetch products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Combos handles GET /api/combos requests.
func (h *CatalogHandler) Combos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	combos, err := h.source.Combos(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("combos feed fetch failed")
		writeError(w, http.StatusBadGateway, "failed to fetch combos", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, combos)
}
