package repository

import (
	"context"

	"konaseema-kart/internal/coupon"
	"konaseema-kart/internal/model"

	"github.com/google/uuid"
)

// AddressRepository defines the interface for address data access operations.
type AddressRepository interface {
	// CreateAddress inserts a new shipping address.
	CreateAddress(ctx context.Context, addr *model.Address) error
}

// OrderRepository defines the interface for order data access operations.
// CreateOrder and CreateOrderItems are deliberately separate calls with no
// shared transaction: the checkout sequencer owns the ordering between them
// and records partial completion instead of rolling back.
type OrderRepository interface {
	// CreateOrder inserts a new order.
	CreateOrder(ctx context.Context, order *model.Order) error

	// CreateOrderItems inserts the order's line records.
	CreateOrderItems(ctx context.Context, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items. Returns
	// (nil, nil, nil) when no such order exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)
}

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	// GetByCode retrieves the active coupon with the given normalized code.
	// Returns (nil, nil) when no active coupon matches.
	GetByCode(ctx context.Context, code string) (*coupon.Record, error)
}
