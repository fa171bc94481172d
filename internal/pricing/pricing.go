// Package pricing resolves unit prices for catalogue items. Products may
// carry a per-pack price table; the single price field is the fallback.
package pricing

import (
	"math"

	"konaseema-kart/internal/model"
)

// ResolveUnitPrice returns the unit price for the item at the selected pack
// size. It never returns a negative or non-finite number.
func ResolveUnitPrice(item *model.CatalogItem, pack model.PackSize) float64 {
	if item == nil {
		return 0
	}
	if item.Prices != nil {
		if v, ok := item.Prices[pack]; ok && isPositive(v) {
			return v
		}
	}
	if isPositive(item.Price) {
		return item.Price
	}
	return 0
}

// DefaultPack picks the pack size used when none is explicitly chosen: the
// first pack (smallest to largest) with a positive price, falling back to
// the smallest label present even at price 0. Items without a price table
// default to 250g. The item's display Weight label is deliberately not
// consulted; the fixed preference order alone decides.
func DefaultPack(item *model.CatalogItem) model.PackSize {
	if item == nil || len(item.Prices) == 0 {
		return model.Pack250g
	}
	for _, p := range model.PackOrder {
		if v, ok := item.Prices[p]; ok && isPositive(v) {
			return p
		}
	}
	for _, p := range model.PackOrder {
		if _, ok := item.Prices[p]; ok {
			return p
		}
	}
	return model.Pack250g
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}
