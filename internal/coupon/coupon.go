// Package coupon validates coupon codes against remote rules and computes
// discount amounts. Records are fetched read-only per apply attempt; the
// discount is recomputed from scratch every time.
package coupon

import (
	"context"
	"time"
)

// Discount types.
const (
	TypePercent = "percent"
	TypeFixed   = "fixed"
)

// Record is a coupon as stored by the external collaborator. Codes are
// normalized upper-case.
type Record struct {
	Code          string     `json:"code" db:"code"`
	Type          string     `json:"type" db:"type"`
	Value         float64    `json:"value" db:"value"`
	IsActive      bool       `json:"isActive" db:"is_active"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	MinOrderValue float64    `json:"minOrderValue" db:"min_order_value"`
}

// Repository looks up coupon records by normalized code, filtered to active
// records only. A missing code returns (nil, nil).
type Repository interface {
	GetByCode(ctx context.Context, code string) (*Record, error)
}

// Application is the outcome of one apply attempt.
type Application struct {
	Discount float64 `json:"discount"`
	Message  string  `json:"message"`
}
