package repository

import (
	"context"
	"fmt"

	"konaseema-kart/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// addressRepository implements the AddressRepository interface using PostgreSQL.
type addressRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(pool *pgxpool.Pool, logger zerolog.Logger) AddressRepository {
	return &addressRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "address").Logger(),
	}
}

// CreateAddress inserts a new shipping address.
func (r *addressRepository) CreateAddress(ctx context.Context, addr *model.Address) error {
	query := `
		INSERT INTO addresses (
			id, user_id, full_name, email, phone,
			address_line1, address_line2, city, state, postal_code, country,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		addr.ID,
		addr.UserID,
		addr.FullName,
		addr.Email,
		addr.Phone,
		addr.AddressLine1,
		addr.AddressLine2,
		addr.City,
		addr.State,
		addr.PostalCode,
		addr.Country,
		addr.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("address_id", addr.ID.String()).
			Msg("failed to create address")
		return fmt.Errorf("failed to create address: %w", err)
	}

	r.logger.Debug().
		Str("address_id", addr.ID.String()).
		Msg("address created successfully")

	return nil
}
