package composer

import (
	"strconv"
	"strings"
)

// DefaultTaxRate is the fixed tax applied to every invoice subtotal.
const DefaultTaxRate = 0.075

// ServiceLineItem is one billable row in an invoice draft. Total is
// derived from quantity and unit price, never set independently.
type ServiceLineItem struct {
	Description string
	Quantity    int
	UnitPrice   float64
	Total       float64
}

// Field names an editable line-item column.
type Field string

const (
	FieldDescription Field = "description"
	FieldQuantity    Field = "quantity"
	FieldUnitPrice   Field = "unitPrice"
)

// Totals is the derived view over the line-item list. It is recomputed
// from scratch on every edit and never stored.
type Totals struct {
	Subtotal   float64
	Tax        float64
	GrandTotal float64
}

// ComputeTotals derives subtotal, tax and grand total from the current
// line items as a pure function.
func ComputeTotals(items []ServiceLineItem, taxRate float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Total
	}
	tax := subtotal * taxRate
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal + tax,
	}
}

// blankLineItem is the row every draft starts with and that addLineItem appends.
func blankLineItem() ServiceLineItem {
	return ServiceLineItem{Description: "", Quantity: 1, UnitPrice: 0, Total: 0}
}

// parseQuantity coerces free-form input to an integer; anything that does
// not parse becomes 0.
func parseQuantity(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

// parsePrice coerces free-form input to a decimal; anything that does not
// parse becomes 0.
func parsePrice(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}
