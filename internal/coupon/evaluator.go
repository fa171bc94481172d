package coupon

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Evaluator applies coupon codes to a subtotal.
type Evaluator struct {
	repo   Repository
	symbol string
	now    func() time.Time
	logger zerolog.Logger
}

// NewEvaluator creates a coupon evaluator. symbol is the currency symbol
// used in user-facing messages.
func NewEvaluator(repo Repository, symbol string, logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		repo:   repo,
		symbol: symbol,
		now:    time.Now,
		logger: logger.With().Str("component", "coupon-evaluator").Logger(),
	}
}

// Apply validates the code against the remote record and computes the
// discount for the given subtotal. An empty code yields a zero discount and
// no message. Rule failures yield a zero discount with a user-facing
// message; only collaborator failures surface as errors.
func (e *Evaluator) Apply(ctx context.Context, code string, subtotal float64) (Application, error) {
	code = Normalize(code)
	if code == "" {
		return Application{}, nil
	}

	rec, err := e.repo.GetByCode(ctx, code)
	if err != nil {
		e.logger.Error().Err(err).Str("coupon_code", code).Msg("coupon lookup failed")
		return Application{}, fmt.Errorf("failed to look up coupon: %w", err)
	}

	if rec == nil || !rec.IsActive {
		e.logger.Debug().Str("coupon_code", code).Msg("coupon not found or inactive")
		return Application{Message: "Invalid or expired coupon"}, nil
	}

	if rec.ExpiresAt != nil && rec.ExpiresAt.Before(e.now()) {
		e.logger.Debug().
			Str("coupon_code", code).
			Time("expires_at", *rec.ExpiresAt).
			Msg("coupon expired")
		return Application{Message: "Coupon expired"}, nil
	}

	if subtotal < rec.MinOrderValue {
		return Application{
			Message: fmt.Sprintf("Minimum order %s%s", e.symbol, formatAmount(rec.MinOrderValue)),
		}, nil
	}

	var discount float64
	switch rec.Type {
	case TypePercent:
		discount = math.Floor(subtotal * rec.Value / 100)
	case TypeFixed:
		discount = rec.Value
	default:
		e.logger.Warn().
			Str("coupon_code", code).
			Str("type", rec.Type).
			Msg("unknown coupon type")
		return Application{Message: "Invalid or expired coupon"}, nil
	}

	e.logger.Debug().
		Str("coupon_code", code).
		Float64("discount", discount).
		Msg("coupon applied")

	return Application{
		Discount: discount,
		Message:  fmt.Sprintf("Coupon applied (-%s%s)", e.symbol, formatAmount(discount)),
	}, nil
}

// Normalize trims and upper-cases a coupon code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// formatAmount renders whole amounts without a decimal point, matching the
// storefront's integer-rupee messages.
func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
