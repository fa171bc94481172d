package handler

import (
	"net/http"
	"strings"

	"konaseema-kart/internal/model"
	"konaseema-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order lookup HTTP requests.
type OrderHandler struct {
	orders repository.OrderRepository
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders repository.OrderRepository, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

// orderResponse is an order with its line records.
type orderResponse struct {
	Order *model.Order      `json:"order"`
	Items []model.OrderItem `json:"items"`
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderIDStr := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	if orderIDStr == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return
	}

	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, items, err := h.orders.GetByID(r.Context(), orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve order", h.logger)
		return
	}

	if order == nil {
		writeDomainError(w, http.StatusNotFound, model.ErrOrderNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{Order: order, Items: items})
}
