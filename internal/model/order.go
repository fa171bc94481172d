package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ShippingForm is the checkout shipping form as entered by the customer.
type ShippingForm struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Country       string `json:"country"`
	Address1      string `json:"address1"`
	Address2      string `json:"address2,omitempty"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	DeliveryNotes string `json:"deliveryNotes,omitempty"`
}

// Validate runs the field-level non-empty checks and returns one message per
// failing required field, keyed by the form's JSON field name.
func (f *ShippingForm) Validate() map[string]string {
	e := make(map[string]string)
	if strings.TrimSpace(f.FullName) == "" {
		e["fullName"] = "Full name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		e["email"] = "Email is required"
	}
	if strings.TrimSpace(f.Phone) == "" {
		e["phone"] = "Phone is required"
	}
	if strings.TrimSpace(f.Country) == "" {
		e["country"] = "Country is required"
	}
	if strings.TrimSpace(f.Address1) == "" {
		e["address1"] = "Address is required"
	}
	if strings.TrimSpace(f.City) == "" {
		e["city"] = "City is required"
	}
	if strings.TrimSpace(f.State) == "" {
		e["state"] = "State is required"
	}
	if strings.TrimSpace(f.Zip) == "" {
		e["zip"] = "ZIP is required"
	}
	return e
}

// Address is the persisted shipping address row, scoped to the user who
// placed the order.
type Address struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"userId" db:"user_id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	AddressLine1 string    `json:"addressLine1" db:"address_line1"`
	AddressLine2 *string   `json:"addressLine2,omitempty" db:"address_line2"`
	City         string    `json:"city" db:"city"`
	State        string    `json:"state" db:"state"`
	PostalCode   string    `json:"postalCode" db:"postal_code"`
	Country      string    `json:"country" db:"country"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Totals are the computed amounts for one checkout attempt.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	ShippingFee float64 `json:"shipping"`
	Total       float64 `json:"total"`
}

// ComputeTotals clamps the grand total at zero regardless of discount size.
func ComputeTotals(subtotal, discount, shippingFee float64) Totals {
	total := subtotal - discount + shippingFee
	if total < 0 {
		total = 0
	}
	return Totals{
		Subtotal:    subtotal,
		Discount:    discount,
		ShippingFee: shippingFee,
		Total:       total,
	}
}

// OrderStatusPending is the status every new order starts in.
const OrderStatusPending = "pending"

// Order is the persisted order row.
type Order struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"userId" db:"user_id"`
	AddressID   uuid.UUID `json:"addressId" db:"address_id"`
	Subtotal    float64   `json:"subtotal" db:"subtotal"`
	Discount    float64   `json:"discount" db:"discount_amount"`
	ShippingFee float64   `json:"shipping" db:"shipping"`
	Total       float64   `json:"total" db:"total"`
	CouponCode  *string   `json:"couponCode,omitempty" db:"coupon_code"`
	Currency    string    `json:"currency" db:"currency"`
	Status      string    `json:"status" db:"status"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderItem is one persisted order line. The catalogue category is
// intentionally not persisted: the order_items table has no such column.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Qty       int       `json:"qty" db:"qty"`
}
