package pricing

import (
	"math"
	"testing"

	"konaseema-kart/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestResolveUnitPrice_PackTableHit(t *testing.T) {
	item := &model.CatalogItem{
		Kind: model.KindProduct,
		ID:   "p7",
		Prices: map[model.PackSize]float64{
			model.Pack250g: 175,
			model.Pack500g: 350,
			model.Pack1kg:  700,
		},
	}

	assert.Equal(t, 175.0, ResolveUnitPrice(item, model.Pack250g))
	assert.Equal(t, 700.0, ResolveUnitPrice(item, model.Pack1kg))
}

func TestResolveUnitPrice_FallsBackToSinglePrice(t *testing.T) {
	item := &model.CatalogItem{
		Kind:  model.KindProduct,
		ID:    "p65",
		Price: 225,
		Prices: map[model.PackSize]float64{
			model.Pack250g: 0, // zero pack entry is not resolvable
		},
	}

	assert.Equal(t, 225.0, ResolveUnitPrice(item, model.Pack250g))
	// Missing pack key falls back too.
	assert.Equal(t, 225.0, ResolveUnitPrice(item, model.Pack1kg))
}

func TestResolveUnitPrice_NeverNegativeOrNonFinite(t *testing.T) {
	assert.Equal(t, 0.0, ResolveUnitPrice(nil, model.Pack250g))
	assert.Equal(t, 0.0, ResolveUnitPrice(&model.CatalogItem{}, model.Pack250g))
	assert.Equal(t, 0.0, ResolveUnitPrice(&model.CatalogItem{Price: -10}, model.Pack250g))
	assert.Equal(t, 0.0, ResolveUnitPrice(&model.CatalogItem{Price: math.NaN()}, model.Pack250g))
	assert.Equal(t, 0.0, ResolveUnitPrice(&model.CatalogItem{Price: math.Inf(1)}, model.Pack250g))
}

func TestResolveUnitPrice_ComboUsesAggregatePrice(t *testing.T) {
	combo := &model.CatalogItem{
		Kind:  model.KindCombo,
		ID:    "c1",
		Price: 999,
	}

	assert.Equal(t, 999.0, ResolveUnitPrice(combo, model.PackAssorted))
}

func TestDefaultPack_FirstPositiveInPreferenceOrder(t *testing.T) {
	item := &model.CatalogItem{
		Prices: map[model.PackSize]float64{
			model.Pack250g: 145,
			model.Pack500g: 290,
			model.Pack1kg:  580,
		},
	}
	assert.Equal(t, model.Pack250g, DefaultPack(item))

	oil := &model.CatalogItem{
		Prices: map[model.PackSize]float64{
			model.Pack500ml: 240,
			model.Pack1L:    480,
		},
	}
	assert.Equal(t, model.Pack500ml, DefaultPack(oil))
}

func TestDefaultPack_AllZeroFallsBackToSmallestLabel(t *testing.T) {
	item := &model.CatalogItem{
		Prices: map[model.PackSize]float64{
			model.Pack250g: 0,
			model.Pack500g: 0,
		},
	}
	assert.Equal(t, model.Pack250g, DefaultPack(item))
}

func TestDefaultPack_NoTable(t *testing.T) {
	assert.Equal(t, model.Pack250g, DefaultPack(&model.CatalogItem{Price: 100}))
	assert.Equal(t, model.Pack250g, DefaultPack(nil))
}
