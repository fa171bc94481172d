package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"konaseema-kart/internal/cart"
	"konaseema-kart/internal/model"

	"github.com/rs/zerolog"
)

// CartHandler handles session cart HTTP requests.
type CartHandler struct {
	carts  *cart.Manager
	source CatalogSource
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *cart.Manager, source CatalogSource, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		source: source,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// cartView is the cart as rendered to clients. Count and subtotal are
// computed on read, never stored.
type cartView struct {
	Lines    []model.CartLine `json:"lines"`
	Count    int              `json:"count"`
	Subtotal float64          `json:"subtotal"`
	Open     bool             `json:"open"`
}

// addRequest is the POST /api/cart/items body.
type addRequest struct {
	ItemID string         `json:"itemId"`
	Pack   model.PackSize `json:"pack,omitempty"`
	Qty    int            `json:"qty"`
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.view(h.carts.Get(sessionID(r))))
}

// Add handles POST /api/cart/items requests. The item's pack, unit price and
// weight are resolved from the catalogue and frozen onto the line.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	item, err := h.findItem(r.Context(), req.ItemID)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch catalogue", h.logger)
		return
	}
	if item == nil {
		writeDomainError(w, http.StatusNotFound, model.ErrLineNotFound, h.logger)
		return
	}
	if !item.Purchasable() {
		writeDomainError(w, http.StatusConflict, model.ErrNotPurchasable, h.logger)
		return
	}

	store := h.carts.Get(sessionID(r))
	if err := store.Add(item, req.Pack, req.Qty); err != nil {
		h.writeCartError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.view(store))
}

// Mutate handles POST/DELETE /api/cart/items/{id} requests: increment,
// decrement, or remove one line.
func (h *CartHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	id, action, ok := splitItemPath(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, "item ID is required", h.logger)
		return
	}

	store := h.carts.Get(sessionID(r))

	var err error
	switch {
	case r.Method == http.MethodPost && action == "increment":
		err = store.Increment(id)
	case r.Method == http.MethodPost && action == "decrement":
		err = store.Decrement(id)
	case r.Method == http.MethodDelete && action == "":
		err = store.Remove(id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.view(store))
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	store := h.carts.Get(sessionID(r))
	store.Clear()
	writeJSON(w, http.StatusOK, h.view(store))
}

func (h *CartHandler) view(store *cart.Store) cartView {
	return cartView{
		Lines:    store.Lines(),
		Count:    store.Count(),
		Subtotal: store.Subtotal(),
		Open:     store.IsOpen(),
	}
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, err error) {
	var derr *model.DomainError
	if errors.As(err, &derr) {
		status := http.StatusBadRequest
		if derr.Code == model.ErrCodeLineNotFound {
			status = http.StatusNotFound
		}
		writeDomainError(w, status, derr, h.logger)
		return
	}
	writeError(w, http.StatusInternalServerError, "cart operation failed", h.logger)
}

// findItem resolves a catalogue item by id across products and combos.
func (h *CartHandler) findItem(ctx context.Context, id string) (*model.CatalogItem, error) {
	if id == "" {
		return nil, nil
	}

	products, err := h.source.Products(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}

	combos, err := h.source.Combos(ctx)
	if err != nil {
		return nil, err
	}
	for i := range combos {
		if combos[i].ID == id {
			return &combos[i], nil
		}
	}
	return nil, nil
}

// splitItemPath extracts the line id and optional action from paths like
// /api/cart/items/{id} and /api/cart/items/{id}/increment.
func splitItemPath(path string) (id, action string, ok bool) {
	rest, found := strings.CutPrefix(path, "/api/cart/items/")
	if !found || rest == "" {
		return "", "", false
	}
	parts := strings.SplitN(strings.TrimSuffix(rest, "/"), "/", 2)
	id = parts[0]
	if id == "" {
		return "", "", false
	}
	if len(parts) == 2 {
		action = parts[1]
	}
	return id, action, true
}
