package repository

import (
	"context"
	"fmt"

	"konaseema-kart/internal/coupon"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

// GetByCode retrieves the active coupon with the given normalized code.
// Inactive rows never surface; the evaluator treats a nil record and an
// inactive record the same way.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*coupon.Record, error) {
	query := `
		SELECT code, type, value, is_active, expires_at, min_order_value
		FROM coupons
		WHERE code = $1 AND is_active = TRUE
	`

	var rec coupon.Record
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&rec.Code,
		&rec.Type,
		&rec.Value,
		&rec.IsActive,
		&rec.ExpiresAt,
		&rec.MinOrderValue,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return &rec, nil
}
