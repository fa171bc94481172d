package checkout

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"konaseema-kart/internal/model"
)

// BuildConfirmation renders the order confirmation as fixed-width monospace
// tables for the messaging handoff: delivery details, line items, and
// totals. Output is deterministic; identical inputs produce byte-identical
// text.
func BuildConfirmation(orderID string, shipping model.ShippingForm, lines []model.CartLine, totals model.Totals, symbol string) string {
	deliveryRows := [][]string{
		{"Name", orDash(shipping.FullName)},
		{"Email", orDash(shipping.Email)},
		{"Phone", orDash(shipping.Phone)},
		{"Country", orDash(shipping.Country)},
		{"Address 1", orDash(shipping.Address1)},
		{"Address 2", orDash(shipping.Address2)},
		{"City", orDash(shipping.City)},
		{"State", orDash(shipping.State)},
		{"ZIP", orDash(shipping.Zip)},
		{"Notes", orDash(shipping.DeliveryNotes)},
	}

	itemRows := make([][]string, 0, len(lines))
	for i, l := range lines {
		itemRows = append(itemRows, []string{
			fmt.Sprintf("%d", i+1),
			strings.TrimSpace(l.Name),
			fmt.Sprintf("%d", l.Qty),
			symbol + amount(l.UnitPrice),
			symbol + amount(l.LineTotal()),
		})
	}

	totalsRows := [][]string{
		{"Subtotal", symbol + amount(totals.Subtotal)},
	}
	if totals.Discount > 0 {
		totalsRows = append(totalsRows, []string{"Discount", "-" + symbol + amount(totals.Discount)})
	}
	if totals.ShippingFee > 0 {
		totalsRows = append(totalsRows, []string{"Shipping", symbol + amount(totals.ShippingFee)})
	}
	totalsRows = append(totalsRows, []string{"Total", symbol + amount(totals.Total)})

	sections := []string{
		"Order ID: " + orderID,
		"",
		"Delivery Details:",
		"```",
		makeTable([]string{"Field", "Value"}, deliveryRows),
		"```",
		"",
		"Order Items:",
		"```",
		makeTable([]string{"#", "Item", "Qty", "Price", "Line"}, itemRows),
		"```",
		"",
		"Totals:",
		"```",
		makeTable([]string{"Label", "Amount"}, totalsRows),
		"```",
	}
	return strings.Join(sections, "\n")
}

// makeTable renders a fixed-width table: column widths are the maximum
// content width per column (header included), columns are separated by two
// spaces, and a dashed rule matching each column's width separates the
// header from the body.
func makeTable(headers []string, rows [][]string) string {
	// Widths count runes, not bytes, so currency symbols align.
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
		for _, r := range rows {
			if i < len(r) {
				if n := utf8.RuneCountInString(r[i]); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}

	line := func(cols []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			c := ""
			if i < len(cols) {
				c = cols[i]
			}
			parts[i] = c + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(c))
		}
		return strings.Join(parts, "  ")
	}

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}

	out := []string{line(headers), strings.Join(sep, "  ")}
	for _, r := range rows {
		out = append(out, line(r))
	}
	return strings.Join(out, "\n")
}

// amount renders whole amounts as integers, everything else with two
// decimals.
func amount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func orDash(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	return s
}
