package cart

import "github.com/shopspring/decimal"

// Totals is the derived monetary summary of a cart.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
}

// ComputeTotals derives the summary from scratch. Discount is always zero for
// now; it stays in the shape so a promotion engine can fill it in later.
func ComputeTotals(lines []Line, taxRate, serviceCharge decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	tax := subtotal.Mul(taxRate)
	discount := decimal.Zero
	if len(lines) == 0 {
		serviceCharge = decimal.Zero
	}

	return Totals{
		Subtotal:      subtotal,
		Tax:           tax,
		ServiceCharge: serviceCharge,
		Discount:      discount,
		Total:         subtotal.Add(tax).Add(serviceCharge).Sub(discount),
	}
}
