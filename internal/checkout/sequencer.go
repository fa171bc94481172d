// Package checkout drives a single order submission attempt as a saga:
// validate the shipping form, require an authenticated identity, persist
// the address, the order, then the order lines, clear the cart and hand the
// confirmation off to the messaging channel. Steps run in strict sequence
// and the attempt aborts on first failure. There is no compensating
// transaction: a failure mid-sequence leaves earlier rows in place, so each
// step's outcome is logged with the ids involved to support manual cleanup.
package checkout

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"konaseema-kart/internal/cart"
	"konaseema-kart/internal/coupon"
	"konaseema-kart/internal/model"
	"konaseema-kart/internal/shipping"
	"konaseema-kart/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DraftKeyPrefix is the fixed key prefix for persisted shipping-form drafts.
const DraftKeyPrefix = "konaseema_shipping_v1"

// State names the sequencer's position in one checkout attempt.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateAuthCheck  State = "auth_check"
	StateAddress    State = "submitting_address"
	StateOrder      State = "submitting_order"
	StateItems      State = "submitting_items"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
	StateNeedsLogin State = "needs_login"
)

// Step names one saga step in the outcome log.
type Step string

const (
	StepValidate Step = "validate"
	StepAuth     Step = "auth"
	StepCoupon   Step = "coupon"
	StepAddress  Step = "address"
	StepOrder    Step = "order"
	StepItems    Step = "items"
	StepFinalize Step = "finalize"
)

// StepOutcome records one step's result for observability and manual
// cleanup after partial completion.
type StepOutcome struct {
	Step  Step   `json:"step"`
	OK    bool   `json:"ok"`
	RefID string `json:"refId,omitempty"`
	Error string `json:"error,omitempty"`
}

// AddressWriter persists a shipping address.
type AddressWriter interface {
	CreateAddress(ctx context.Context, addr *model.Address) error
}

// OrderWriter persists an order and its line records.
type OrderWriter interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	CreateOrderItems(ctx context.Context, items []model.OrderItem) error
}

// IdentityProvider resolves the current authenticated identity, if any.
type IdentityProvider interface {
	Current(ctx context.Context) (uuid.UUID, bool)
}

// CouponApplier recomputes the discount for a code and subtotal.
type CouponApplier interface {
	Apply(ctx context.Context, code string, subtotal float64) (coupon.Application, error)
}

// Notifier hands the confirmation text off to the external messaging
// channel and returns the deep link. Fire-and-forget; failures never fail
// the order.
type Notifier interface {
	Send(ctx context.Context, text string) (string, error)
}

// Request is one checkout attempt.
type Request struct {
	Session    string             `json:"-"`
	Shipping   model.ShippingForm `json:"shipping"`
	CouponCode string             `json:"couponCode,omitempty"`
}

// Result is the observable outcome of one attempt.
type Result struct {
	State        State             `json:"state"`
	OrderID      uuid.UUID         `json:"orderId,omitempty"`
	Totals       model.Totals      `json:"totals"`
	FieldErrors  map[string]string `json:"fieldErrors,omitempty"`
	Message      string            `json:"message,omitempty"`
	Steps        []StepOutcome     `json:"steps"`
	Confirmation string            `json:"confirmation,omitempty"`
	HandoffURL   string            `json:"handoffUrl,omitempty"`
}

// Sequencer orchestrates checkout attempts. It is not reentrant-safe: a
// second invocation while one is in flight is rejected, and callers should
// also disable the triggering control while Saving reports true.
type Sequencer struct {
	addresses AddressWriter
	orders    OrderWriter
	identity  IdentityProvider
	coupons   CouponApplier
	shipping  shipping.Calculator
	notifier  Notifier
	drafts    storage.Port
	currency  string
	symbol    string
	saving    atomic.Bool
	logger    zerolog.Logger
}

// NewSequencer creates a checkout sequencer.
func NewSequencer(
	addresses AddressWriter,
	orders OrderWriter,
	identity IdentityProvider,
	coupons CouponApplier,
	shippingCalc shipping.Calculator,
	notifier Notifier,
	drafts storage.Port,
	currency string,
	symbol string,
	logger zerolog.Logger,
) *Sequencer {
	return &Sequencer{
		addresses: addresses,
		orders:    orders,
		identity:  identity,
		coupons:   coupons,
		shipping:  shippingCalc,
		notifier:  notifier,
		drafts:    drafts,
		currency:  currency,
		symbol:    symbol,
		logger:    logger.With().Str("component", "checkout").Logger(),
	}
}

// Saving reports whether an attempt is currently in flight.
func (s *Sequencer) Saving() bool {
	return s.saving.Load()
}

// PlaceOrder runs one checkout attempt against the given cart. Every
// failure path leaves the cart and the persisted shipping draft intact for
// retry; only a Succeeded result clears the cart.
func (s *Sequencer) PlaceOrder(ctx context.Context, store *cart.Store, req Request) (*Result, error) {
	if !s.saving.CompareAndSwap(false, true) {
		return nil, model.ErrCheckoutBusy
	}
	defer s.saving.Store(false)

	res := &Result{State: StateIdle}

	// Checkout is blocked outright on an empty cart, before validation.
	if store.IsEmpty() {
		res.State = StateFailed
		res.Message = model.ErrCartEmpty.Message
		return res, nil
	}

	// Persist the shipping draft best-effort so a failed attempt can be
	// corrected and retried.
	s.saveDraft(req.Session, req.Shipping)

	// Validate.
	res.State = StateValidating
	if fieldErrors := req.Shipping.Validate(); len(fieldErrors) > 0 {
		res.State = StateFailed
		res.FieldErrors = fieldErrors
		res.Message = "Please fill all required fields."
		res.Steps = append(res.Steps, StepOutcome{Step: StepValidate, Error: res.Message})
		return res, nil
	}
	res.Steps = append(res.Steps, StepOutcome{Step: StepValidate, OK: true})

	// Auth check.
	res.State = StateAuthCheck
	userID, ok := s.identity.Current(ctx)
	if !ok {
		res.State = StateNeedsLogin
		res.Message = model.ErrLoginRequired.Message
		res.Steps = append(res.Steps, StepOutcome{Step: StepAuth, Error: res.Message})
		return res, nil
	}
	res.Steps = append(res.Steps, StepOutcome{Step: StepAuth, OK: true, RefID: userID.String()})

	// Totals. The discount is recomputed from scratch on every attempt.
	lines := store.Lines()
	subtotal := store.Subtotal()

	discount := 0.0
	code := coupon.Normalize(req.CouponCode)
	if code != "" {
		app, err := s.coupons.Apply(ctx, code, subtotal)
		if err != nil {
			return s.fail(res, StepCoupon, "", err), nil
		}
		discount = app.Discount
	}
	fee := s.shipping.Fee(lines)
	res.Totals = model.ComputeTotals(subtotal, discount, fee)

	// Persist address.
	res.State = StateAddress
	now := time.Now()
	addr := &model.Address{
		ID:           uuid.New(),
		UserID:       userID,
		FullName:     req.Shipping.FullName,
		Email:        req.Shipping.Email,
		Phone:        req.Shipping.Phone,
		AddressLine1: req.Shipping.Address1,
		AddressLine2: optional(req.Shipping.Address2),
		City:         req.Shipping.City,
		State:        req.Shipping.State,
		PostalCode:   req.Shipping.Zip,
		Country:      req.Shipping.Country,
		CreatedAt:    now,
	}
	if err := s.addresses.CreateAddress(ctx, addr); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("address persistence failed")
		return s.fail(res, StepAddress, "", err), nil
	}
	res.Steps = append(res.Steps, StepOutcome{Step: StepAddress, OK: true, RefID: addr.ID.String()})

	// Persist order. The address row above is not rolled back on failure;
	// the step log records its id for manual cleanup.
	res.State = StateOrder
	order := &model.Order{
		ID:          uuid.New(),
		UserID:      userID,
		AddressID:   addr.ID,
		Subtotal:    res.Totals.Subtotal,
		Discount:    res.Totals.Discount,
		ShippingFee: res.Totals.ShippingFee,
		Total:       res.Totals.Total,
		CouponCode:  optional(code),
		Currency:    s.currency,
		Status:      model.OrderStatusPending,
		Notes:       optional(req.Shipping.DeliveryNotes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		s.logger.Error().
			Err(err).
			Str("address_id", addr.ID.String()).
			Msg("order persistence failed, address row left in place")
		return s.fail(res, StepOrder, "", err), nil
	}
	res.OrderID = order.ID
	res.Steps = append(res.Steps, StepOutcome{Step: StepOrder, OK: true, RefID: order.ID.String()})

	// Persist line records.
	res.State = StateItems
	items := make([]model.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: l.ItemID,
			Name:      l.Name,
			Price:     l.UnitPrice,
			Qty:       l.Qty,
		}
	}
	if err := s.orders.CreateOrderItems(ctx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("address_id", addr.ID.String()).
			Msg("order items persistence failed, order row left in place")
		return s.fail(res, StepItems, order.ID.String(), err), nil
	}
	res.Steps = append(res.Steps, StepOutcome{Step: StepItems, OK: true, RefID: order.ID.String()})

	// Success: clear the cart, build the confirmation and hand it off.
	store.Clear()

	res.Confirmation = BuildConfirmation(order.ID.String(), req.Shipping, lines, res.Totals, s.symbol)
	if s.notifier != nil {
		link, err := s.notifier.Send(ctx, res.Confirmation)
		if err != nil {
			s.logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("confirmation handoff failed")
		} else {
			res.HandoffURL = link
		}
	}

	res.State = StateSucceeded
	res.Message = "Order placed successfully. Order ID: " + order.ID.String()
	res.Steps = append(res.Steps, StepOutcome{Step: StepFinalize, OK: true, RefID: order.ID.String()})

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Float64("total", res.Totals.Total).
		Int("item_count", len(items)).
		Msg("order placed")

	return res, nil
}

// LoadDraft returns the persisted shipping draft for the session, if any.
func (s *Sequencer) LoadDraft(session string) (model.ShippingForm, bool) {
	var form model.ShippingForm
	if s.drafts == nil {
		return form, false
	}
	data, ok := s.drafts.Load(DraftKeyPrefix + ":" + session)
	if !ok {
		return form, false
	}
	if err := json.Unmarshal(data, &form); err != nil {
		s.logger.Warn().Err(err).Msg("discarding corrupt shipping draft")
		return model.ShippingForm{}, false
	}
	return form, true
}

func (s *Sequencer) saveDraft(session string, form model.ShippingForm) {
	if s.drafts == nil {
		return
	}
	data, err := json.Marshal(form)
	if err != nil {
		return
	}
	if err := s.drafts.Save(DraftKeyPrefix+":"+session, data); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist shipping draft")
	}
}

// fail records the failed step with the collaborator's error text surfaced
// verbatim.
func (s *Sequencer) fail(res *Result, step Step, refID string, err error) *Result {
	res.State = StateFailed
	res.Message = err.Error()
	res.Steps = append(res.Steps, StepOutcome{Step: step, RefID: refID, Error: err.Error()})
	return res
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
