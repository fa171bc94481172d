// Package shipping computes the shipping fee for a cart. The policy is a
// deployment choice: a flat fee (zero on the current storefront) or a
// weight-tiered table. Both are swappable behind the Calculator interface
// without touching checkout.
package shipping

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"konaseema-kart/internal/model"
)

// Calculator maps cart lines to a shipping fee. An empty cart always costs 0.
type Calculator interface {
	Fee(lines []model.CartLine) float64
}

// FlatPolicy charges a fixed fee for any non-empty cart.
type FlatPolicy struct {
	FlatFee float64
}

// Fee implements Calculator.
func (p FlatPolicy) Fee(lines []model.CartLine) float64 {
	if len(lines) == 0 {
		return 0
	}
	return p.FlatFee
}

// Tier is one band of the weight-tiered table: carts up to MaxKg
// (inclusive) pay Fee.
type Tier struct {
	MaxKg float64
	Fee   float64
}

// TieredPolicy charges by total cart weight. Tiers are kept in ascending
// weight order; a weight beyond the last tier pays the last tier's fee.
type TieredPolicy struct {
	Tiers []Tier
}

// NewTieredPolicy sorts the tiers ascending by weight.
func NewTieredPolicy(tiers []Tier) TieredPolicy {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MaxKg < sorted[j].MaxKg })
	return TieredPolicy{Tiers: sorted}
}

// Fee implements Calculator.
func (p TieredPolicy) Fee(lines []model.CartLine) float64 {
	if len(lines) == 0 || len(p.Tiers) == 0 {
		return 0
	}
	weight := TotalWeight(lines)
	for _, t := range p.Tiers {
		if weight <= t.MaxKg {
			return t.Fee
		}
	}
	return p.Tiers[len(p.Tiers)-1].Fee
}

// TotalWeight sums per-unit weight times quantity across lines, in
// kilograms. Lines with unparseable or missing weight contribute zero.
func TotalWeight(lines []model.CartLine) float64 {
	total := 0.0
	for i := range lines {
		total += ParseWeightKg(lines[i].Weight) * float64(lines[i].Qty)
	}
	return total
}

// ParseWeightKg parses a weight descriptor like "250g" or "1kg" into
// kilograms. Volume labels (ml, L) and anything else unrecognizable
// contribute zero.
func ParseWeightKg(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}

	var unit string
	var numPart string
	switch {
	case strings.HasSuffix(s, "kg"):
		unit = "kg"
		numPart = strings.TrimSuffix(s, "kg")
	case strings.HasSuffix(s, "g"):
		unit = "g"
		numPart = strings.TrimSuffix(s, "g")
	default:
		return 0
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(numPart), 64)
	if err != nil || v < 0 {
		return 0
	}
	if unit == "g" {
		return v / 1000
	}
	return v
}

// ParseTiers parses a tier table from its config form, "maxKg:fee" pairs
// separated by commas, e.g. "1:60,2:90,5:150,10:250".
func ParseTiers(s string) ([]Tier, error) {
	var tiers []Tier
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid shipping tier %q (want maxKg:fee)", part)
		}
		maxKg, err := strconv.ParseFloat(strings.TrimSpace(kv[0]), 64)
		if err != nil || maxKg <= 0 {
			return nil, fmt.Errorf("invalid shipping tier weight %q", kv[0])
		}
		fee, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil || fee < 0 {
			return nil, fmt.Errorf("invalid shipping tier fee %q", kv[1])
		}
		tiers = append(tiers, Tier{MaxKg: maxKg, Fee: fee})
	}
	if len(tiers) == 0 {
		return nil, fmt.Errorf("shipping tier table is empty")
	}
	return tiers, nil
}

// FromConfig builds the configured policy. policy is "flat" or "tiered".
func FromConfig(policy string, flatFee float64, tierSpec string) (Calculator, error) {
	switch policy {
	case "flat":
		return FlatPolicy{FlatFee: flatFee}, nil
	case "tiered":
		tiers, err := ParseTiers(tierSpec)
		if err != nil {
			return nil, err
		}
		return NewTieredPolicy(tiers), nil
	default:
		return nil, fmt.Errorf("unknown shipping policy %q", policy)
	}
}
