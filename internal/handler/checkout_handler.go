package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"konaseema-kart/internal/cart"
	"konaseema-kart/internal/checkout"
	"konaseema-kart/internal/model"

	"github.com/rs/zerolog"
)

// OrderPlacer runs checkout attempts and keeps per-session shipping drafts.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, store *cart.Store, req checkout.Request) (*checkout.Result, error)
	LoadDraft(session string) (model.ShippingForm, bool)
}

// CheckoutHandler handles checkout HTTP requests.
type CheckoutHandler struct {
	carts     *cart.Manager
	sequencer OrderPlacer
	logger    zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(carts *cart.Manager, sequencer OrderPlacer, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		carts:     carts,
		sequencer: sequencer,
		logger:    logger.With().Str("handler", "checkout").Logger(),
	}
}

// checkoutRequest is the POST /api/checkout body.
type checkoutRequest struct {
	Shipping   model.ShippingForm `json:"shipping"`
	CouponCode string             `json:"couponCode,omitempty"`
}

// PlaceOrder handles POST /api/checkout requests. The response always
// carries the full attempt result, step log included, so a partially
// completed attempt remains observable.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	session := sessionID(r)
	store := h.carts.Get(session)

	res, err := h.sequencer.PlaceOrder(r.Context(), store, checkout.Request{
		Session:    session,
		Shipping:   req.Shipping,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		var derr *model.DomainError
		if errors.As(err, &derr) && derr.Code == model.ErrCodeCheckoutBusy {
			writeDomainError(w, http.StatusConflict, derr, h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "checkout failed", h.logger)
		return
	}

	writeJSON(w, statusForResult(res), res)
}

// Draft handles GET /api/checkout/draft requests, returning the persisted
// shipping form for the session so an interrupted checkout can be resumed.
func (h *CheckoutHandler) Draft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	form, ok := h.sequencer.LoadDraft(sessionID(r))
	if !ok {
		writeError(w, http.StatusNotFound, "no shipping draft", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// statusForResult maps the sequencer's terminal state to an HTTP status.
// Validation and empty-cart failures are the client's to fix; anything that
// failed at a persistence step is an upstream failure.
func statusForResult(res *checkout.Result) int {
	switch res.State {
	case checkout.StateSucceeded:
		return http.StatusCreated
	case checkout.StateNeedsLogin:
		return http.StatusUnauthorized
	case checkout.StateFailed:
		if len(res.FieldErrors) > 0 || res.Message == model.ErrCartEmpty.Message {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}
