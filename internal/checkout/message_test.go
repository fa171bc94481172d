package checkout

import (
	"strings"
	"testing"

	"konaseema-kart/internal/model"

	"github.com/stretchr/testify/assert"
)

func sampleShipping() model.ShippingForm {
	return model.ShippingForm{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "9999999999",
		Country:  "India",
		Address1: "12 Canal Road",
		City:     "Kakinada",
		State:    "AP",
		Zip:      "533001",
	}
}

func sampleLines() []model.CartLine {
	return []model.CartLine{
		{ItemID: "p1", Name: "Kova", UnitPrice: 100, Qty: 2},
		{ItemID: "p2", Name: "Rava Laddu", UnitPrice: 50, Qty: 1},
	}
}

func TestMakeTable_FixedWidthLayout(t *testing.T) {
	got := makeTable([]string{"#", "Item"}, [][]string{{"1", "Kova"}})

	want := strings.Join([]string{
		"#  Item",
		"-  ----",
		"1  Kova",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestMakeTable_ColumnWidthFromLongestCell(t *testing.T) {
	got := makeTable([]string{"Label", "Amount"}, [][]string{
		{"Subtotal", "₹250"},
		{"Total", "₹225"},
	})

	want := strings.Join([]string{
		"Label     Amount",
		"--------  ------",
		"Subtotal  ₹250  ",
		"Total     ₹225  ",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestBuildConfirmation_GoldenOutput(t *testing.T) {
	totals := model.ComputeTotals(250, 25, 0)

	got := BuildConfirmation("42", sampleShipping(), sampleLines(), totals, "₹")

	want := strings.Join([]string{
		"Order ID: 42",
		"",
		"Delivery Details:",
		"```",
		"Field      Value           ",
		"---------  ----------------",
		"Name       Asha Rao        ",
		"Email      asha@example.com",
		"Phone      9999999999      ",
		"Country    India           ",
		"Address 1  12 Canal Road   ",
		"Address 2  -               ",
		"City       Kakinada        ",
		"State      AP              ",
		"ZIP        533001          ",
		"Notes      -               ",
		"```",
		"",
		"Order Items:",
		"```",
		"#  Item        Qty  Price  Line",
		"-  ----------  ---  -----  ----",
		"1  Kova        2    ₹100   ₹200",
		"2  Rava Laddu  1    ₹50    ₹50 ",
		"```",
		"",
		"Totals:",
		"```",
		"Label     Amount",
		"--------  ------",
		"Subtotal  ₹250  ",
		"Discount  -₹25  ",
		"Total     ₹225  ",
		"```",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestBuildConfirmation_Deterministic(t *testing.T) {
	totals := model.ComputeTotals(250, 0, 40)

	first := BuildConfirmation("42", sampleShipping(), sampleLines(), totals, "₹")
	second := BuildConfirmation("42", sampleShipping(), sampleLines(), totals, "₹")

	assert.Equal(t, first, second)
}

func TestBuildConfirmation_OmitsZeroDiscountAndShipping(t *testing.T) {
	noExtras := BuildConfirmation("42", sampleShipping(), sampleLines(), model.ComputeTotals(250, 0, 0), "₹")
	assert.NotContains(t, noExtras, "Discount")
	assert.NotContains(t, noExtras, "Shipping")

	withFee := BuildConfirmation("42", sampleShipping(), sampleLines(), model.ComputeTotals(250, 0, 40), "₹")
	assert.Contains(t, withFee, "Shipping")
	assert.NotContains(t, withFee, "Discount")
}

func TestBuildConfirmation_BlankOptionalFieldsRenderDash(t *testing.T) {
	shipping := sampleShipping()
	shipping.Address2 = ""
	shipping.DeliveryNotes = "  "

	got := BuildConfirmation("42", shipping, sampleLines(), model.ComputeTotals(250, 0, 0), "₹")
	assert.Contains(t, got, "Address 2  -")
	assert.Contains(t, got, "Notes      -")
}

func TestBuildConfirmation_FractionalAmounts(t *testing.T) {
	lines := []model.CartLine{{ItemID: "p1", Name: "Ghee", UnitPrice: 99.5, Qty: 1}}
	got := BuildConfirmation("42", sampleShipping(), lines, model.ComputeTotals(99.5, 0, 0), "₹")

	assert.Contains(t, got, "₹99.50")
}
