package integration

import (
	"context"
	"testing"

	"konaseema-kart/internal/cart"
	"konaseema-kart/internal/checkout"
	"konaseema-kart/internal/coupon"
	"konaseema-kart/internal/model"
	"konaseema-kart/internal/notify"
	"konaseema-kart/internal/repository"
	"konaseema-kart/internal/shipping"
	"konaseema-kart/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticIdentity always reports the same authenticated user.
type staticIdentity struct {
	userID uuid.UUID
}

func (s staticIdentity) Current(ctx context.Context) (uuid.UUID, bool) {
	return s.userID, true
}

func TestCheckoutSequencer_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()

	addresses := repository.NewAddressRepository(testDB.Pool, logger)
	orders := repository.NewOrderRepository(testDB.Pool, logger)
	coupons := repository.NewCouponRepository(testDB.Pool, logger)
	evaluator := coupon.NewEvaluator(coupons, "₹", logger)

	notifier, err := notify.NewWhatsApp("917989301401", logger)
	require.NoError(t, err)

	snapshots := storage.NewMemory()
	userID := uuid.New()

	sequencer := checkout.NewSequencer(
		addresses,
		orders,
		staticIdentity{userID: userID},
		evaluator,
		shipping.FlatPolicy{},
		notifier,
		snapshots,
		"INR",
		"₹",
		logger,
	)

	ctx := context.Background()

	fillCart := func(t *testing.T, session string) *cart.Store {
		t.Helper()
		store := cart.NewStore(snapshots, cart.StorageKeyPrefix+":"+session, logger)
		kova := &model.CatalogItem{
			Kind: model.KindProduct, ID: "p1", Name: "Kova", Live: true,
			Prices: map[model.PackSize]float64{model.Pack250g: 100},
		}
		laddu := &model.CatalogItem{
			Kind: model.KindProduct, ID: "p4", Name: "Rava Laddu", Live: true,
			Prices: map[model.PackSize]float64{model.Pack250g: 50},
		}
		require.NoError(t, store.Add(kova, model.Pack250g, 2))
		require.NoError(t, store.Add(laddu, model.Pack250g, 1))
		return store
	}

	shippingForm := model.ShippingForm{
		FullName: "Asha Rao", Email: "asha@example.com", Phone: "9999999999",
		Country: "India", Address1: "12 Canal Road", City: "Kakinada",
		State: "AP", Zip: "533001",
	}

	t.Run("Order with coupon lands in the database", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCoupons(t, testDB.Pool)

		store := fillCart(t, "it-1")

		res, err := sequencer.PlaceOrder(ctx, store, checkout.Request{
			Session:    "it-1",
			Shipping:   shippingForm,
			CouponCode: "ten",
		})
		require.NoError(t, err)
		require.Equal(t, checkout.StateSucceeded, res.State)

		// 250 subtotal, 10% coupon, free shipping.
		assert.Equal(t, 250.0, res.Totals.Subtotal)
		assert.Equal(t, 25.0, res.Totals.Discount)
		assert.Equal(t, 225.0, res.Totals.Total)

		got, items, err := orders.GetByID(ctx, res.OrderID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, 225.0, got.Total)
		require.NotNil(t, got.CouponCode)
		assert.Equal(t, "TEN", *got.CouponCode)
		require.Len(t, items, 2)

		// The address row the order references exists.
		var count int
		require.NoError(t, testDB.Pool.QueryRow(ctx,
			"SELECT COUNT(*) FROM addresses WHERE id = $1", got.AddressID).Scan(&count))
		assert.Equal(t, 1, count)

		// Success clears the cart and hands off the confirmation.
		assert.True(t, store.IsEmpty())
		assert.Contains(t, res.HandoffURL, "https://wa.me/917989301401?text=")
		assert.Contains(t, res.Confirmation, "Order ID: "+res.OrderID.String())
	})

	t.Run("Expired coupon places the order at full price", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCoupons(t, testDB.Pool)

		store := fillCart(t, "it-2")

		res, err := sequencer.PlaceOrder(ctx, store, checkout.Request{
			Session:    "it-2",
			Shipping:   shippingForm,
			CouponCode: "DIWALI23",
		})
		require.NoError(t, err)
		require.Equal(t, checkout.StateSucceeded, res.State)
		assert.Equal(t, 0.0, res.Totals.Discount)
		assert.Equal(t, 250.0, res.Totals.Total)
	})

	t.Run("Shipping draft survives a failed attempt", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		store := fillCart(t, "it-3")

		incomplete := shippingForm
		incomplete.Phone = ""

		res, err := sequencer.PlaceOrder(ctx, store, checkout.Request{
			Session:  "it-3",
			Shipping: incomplete,
		})
		require.NoError(t, err)
		require.Equal(t, checkout.StateFailed, res.State)
		assert.Contains(t, res.FieldErrors, "phone")

		draft, ok := sequencer.LoadDraft("it-3")
		require.True(t, ok)
		assert.Equal(t, "Asha Rao", draft.FullName)

		// No rows were written.
		var count int
		require.NoError(t, testDB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count))
		assert.Equal(t, 0, count)
	})
}
