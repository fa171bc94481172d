package model

// PackSize is a named quantity unit a product may be priced per.
type PackSize string

// Pack sizes seen in the catalogue, smallest to largest. Volume labels
// (500ml, 1L) are priced like any other pack but carry no shipping weight.
const (
	Pack200g     PackSize = "200g"
	Pack250g     PackSize = "250g"
	Pack500ml    PackSize = "500ml"
	Pack500g     PackSize = "500g"
	Pack1kg      PackSize = "1kg"
	Pack1L       PackSize = "1L"
	PackAssorted PackSize = "Assorted"
)

// PackOrder is the fixed preference order used when no pack is explicitly
// selected.
var PackOrder = []PackSize{Pack200g, Pack250g, Pack500ml, Pack500g, Pack1kg, Pack1L, PackAssorted}

// ItemKind discriminates the two purchasable variants in the catalogue.
type ItemKind string

const (
	KindProduct ItemKind = "product"
	KindCombo   ItemKind = "combo"
)

// ComboConstituent is a descriptive entry inside a combo. Constituents are
// not separately priced or inventoried.
type ComboConstituent struct {
	Name   string `json:"name"`
	Weight string `json:"weight"`
}

// CatalogItem is the normalized shape every catalogue row is reduced to
// before the cart or pricing code sees it. A combo is a single purchasable
// unit: its Price and Weight describe the whole bundle.
type CatalogItem struct {
	Kind     ItemKind `json:"kind"`
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Image    string   `json:"image"`

	// Price is the single-price fallback; Prices maps pack sizes to unit
	// prices when the product is sold in multiple packs.
	Price  float64              `json:"price,omitempty"`
	Prices map[PackSize]float64 `json:"prices,omitempty"`

	// Weight is the display weight label ("250g", "1L", "Assorted"). For
	// combos it is the shipping weight of the whole bundle.
	Weight string `json:"weight,omitempty"`

	OutOfStock bool     `json:"outOfStock,omitempty"`
	Live       bool     `json:"isLive,omitempty"`
	Desc       string   `json:"desc,omitempty"`
	Highlights []string `json:"highlights,omitempty"`

	// Items is populated for combos only.
	Items []ComboConstituent `json:"items,omitempty"`
}

// Purchasable reports whether the item can be added to a cart at all.
func (i *CatalogItem) Purchasable() bool {
	return !i.OutOfStock && i.Live
}

// CartLine is one product or combo entry in the cart. Pack, UnitPrice and
// Weight are frozen at the time of add so later catalogue changes do not
// retroactively alter lines already in the cart.
type CartLine struct {
	ItemID    string   `json:"id"`
	Kind      ItemKind `json:"kind"`
	Name      string   `json:"name"`
	Image     string   `json:"image,omitempty"`
	Pack      PackSize `json:"pack,omitempty"`
	UnitPrice float64  `json:"price"`
	Weight    string   `json:"weight,omitempty"`
	Qty       int      `json:"qty"`
}

// LineTotal returns unit price times quantity.
func (l *CartLine) LineTotal() float64 {
	return l.UnitPrice * float64(l.Qty)
}
