package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"konaseema-kart/internal/cart"
	"konaseema-kart/internal/coupon"
	"konaseema-kart/internal/model"
	"konaseema-kart/internal/shipping"

	"github.com/rs/zerolog"
)

// CouponApplier recomputes the discount for a code and subtotal.
type CouponApplier interface {
	Apply(ctx context.Context, code string, subtotal float64) (coupon.Application, error)
}

// CouponHandler handles coupon preview requests. Applying a coupon here only
// previews the totals; checkout recomputes the discount from scratch.
type CouponHandler struct {
	carts    *cart.Manager
	applier  CouponApplier
	shipping shipping.Calculator
	logger   zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(carts *cart.Manager, applier CouponApplier, shippingCalc shipping.Calculator, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		carts:    carts,
		applier:  applier,
		shipping: shippingCalc,
		logger:   logger.With().Str("handler", "coupon").Logger(),
	}
}

// applyRequest is the POST /api/coupons/apply body.
type applyRequest struct {
	Code string `json:"code"`
}

// applyResponse previews the discount against the session cart.
type applyResponse struct {
	Code     string       `json:"code"`
	Discount float64      `json:"discount"`
	Message  string       `json:"message,omitempty"`
	Totals   model.Totals `json:"totals"`
}

// Apply handles POST /api/coupons/apply requests.
func (h *CouponHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	store := h.carts.Get(sessionID(r))
	subtotal := store.Subtotal()

	app, err := h.applier.Apply(r.Context(), req.Code, subtotal)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to apply coupon", h.logger)
		return
	}

	fee := h.shipping.Fee(store.Lines())
	writeJSON(w, http.StatusOK, applyResponse{
		Code:     coupon.Normalize(req.Code),
		Discount: app.Discount,
		Message:  app.Message,
		Totals:   model.ComputeTotals(subtotal, app.Discount, fee),
	})
}
