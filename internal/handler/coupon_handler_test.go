package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"konaseema-kart/internal/cart"
	"konaseema-kart/internal/coupon"
	"konaseema-kart/internal/model"
	"konaseema-kart/internal/shipping"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCouponApplier is a mock implementation of CouponApplier.
type MockCouponApplier struct {
	mock.Mock
}

func (m *MockCouponApplier) Apply(ctx context.Context, code string, subtotal float64) (coupon.Application, error) {
	args := m.Called(ctx, code, subtotal)
	return args.Get(0).(coupon.Application), args.Error(1)
}

func couponFixture(t *testing.T, applier CouponApplier) (*CouponHandler, *cart.Manager) {
	t.Helper()
	carts := cart.NewManager(nil, zerolog.Nop())
	h := NewCouponHandler(carts, applier, shipping.FlatPolicy{}, zerolog.Nop())
	return h, carts
}

func seedCart(t *testing.T, carts *cart.Manager, session string) {
	t.Helper()
	item := &model.CatalogItem{
		Kind: model.KindProduct, ID: "p1", Name: "Kova", Live: true,
		Prices: map[model.PackSize]float64{model.Pack250g: 125},
	}
	require.NoError(t, carts.Get(session).Add(item, model.Pack250g, 2))
}

func applyBody(t *testing.T, code string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(applyRequest{Code: code})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestCouponHandler_ApplyPreview(t *testing.T) {
	applier := new(MockCouponApplier)
	applier.On("Apply", mock.Anything, "ten", 250.0).
		Return(coupon.Application{Discount: 25, Message: "Coupon applied (-₹25)"}, nil)

	h, carts := couponFixture(t, applier)
	seedCart(t, carts, "s1")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/coupons/apply", applyBody(t, "ten"))
	req.Header.Set("X-Session-ID", "s1")
	h.Apply(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res applyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "TEN", res.Code)
	assert.Equal(t, 25.0, res.Discount)
	assert.Equal(t, "Coupon applied (-₹25)", res.Message)
	assert.Equal(t, 225.0, res.Totals.Total)
	applier.AssertExpectations(t)
}

func TestCouponHandler_RejectionStillReturnsTotals(t *testing.T) {
	applier := new(MockCouponApplier)
	applier.On("Apply", mock.Anything, "big", 250.0).
		Return(coupon.Application{Message: "Minimum order ₹500"}, nil)

	h, carts := couponFixture(t, applier)
	seedCart(t, carts, "s1")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/coupons/apply", applyBody(t, "big"))
	req.Header.Set("X-Session-ID", "s1")
	h.Apply(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res applyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 0.0, res.Discount)
	assert.Equal(t, "Minimum order ₹500", res.Message)
	assert.Equal(t, 250.0, res.Totals.Total)
}

func TestCouponHandler_LookupFailure(t *testing.T) {
	applier := new(MockCouponApplier)
	applier.On("Apply", mock.Anything, mock.Anything, mock.Anything).
		Return(coupon.Application{}, errors.New("db down"))

	h, carts := couponFixture(t, applier)
	seedCart(t, carts, "s1")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/coupons/apply", applyBody(t, "ten"))
	req.Header.Set("X-Session-ID", "s1")
	h.Apply(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCouponHandler_InvalidBody(t *testing.T) {
	h, _ := couponFixture(t, new(MockCouponApplier))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/coupons/apply", bytes.NewBufferString("not json"))
	h.Apply(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
