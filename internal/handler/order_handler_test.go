package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"konaseema-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrderItems(ctx context.Context, items []model.OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, id)
	var order *model.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*model.Order)
	}
	var items []model.OrderItem
	if args.Get(1) != nil {
		items = args.Get(1).([]model.OrderItem)
	}
	return order, items, args.Error(2)
}

func TestOrderHandler_GetByID(t *testing.T) {
	orderID := uuid.New()
	order := &model.Order{
		ID:       orderID,
		UserID:   uuid.New(),
		Subtotal: 250, Discount: 25, Total: 225,
		Currency:  "INR",
		Status:    model.OrderStatusPending,
		CreatedAt: time.Now(),
	}
	items := []model.OrderItem{
		{ID: uuid.New(), OrderID: orderID, ProductID: "p1", Name: "Kova", Price: 100, Qty: 2},
	}

	repo := new(MockOrderRepository)
	repo.On("GetByID", mock.Anything, orderID).Return(order, items, nil)

	h := NewOrderHandler(repo, zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String(), nil)
	h.GetByID(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, orderID, res.Order.ID)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "p1", res.Items[0].ProductID)
}

func TestOrderHandler_GetByID_NotFound(t *testing.T) {
	orderID := uuid.New()

	repo := new(MockOrderRepository)
	repo.On("GetByID", mock.Anything, orderID).Return(nil, nil, nil)

	h := NewOrderHandler(repo, zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String(), nil)
	h.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHandler_GetByID_InvalidID(t *testing.T) {
	h := NewOrderHandler(new(MockOrderRepository), zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/not-a-uuid", nil)
	h.GetByID(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_GetByID_RepositoryError(t *testing.T) {
	orderID := uuid.New()

	repo := new(MockOrderRepository)
	repo.On("GetByID", mock.Anything, orderID).Return(nil, nil, errors.New("db down"))

	h := NewOrderHandler(repo, zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String(), nil)
	h.GetByID(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
