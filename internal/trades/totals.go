package trades

import "math"

const (
	// DefaultTaxRate applies to all buyers unless their profile carries
	// the reduced tax category.
	DefaultTaxRate = 0.10
	ReducedTaxRate = 0.05

	TaxCategoryReduced = "reduced"
)

// Totals is the breakdown billed to the buyer.
type Totals struct {
	TaxableSubtotal int64 `json:"taxable_subtotal"`
	TotalWithoutTax int64 `json:"total_without_tax"`
	Tax             int64 `json:"tax"`
	Total           int64 `json:"total"`
}

// ItemAmount resolves a line's amount in yen: the explicit amount when
// set, otherwise qty (default 1) times unit price (default 0).
func ItemAmount(item StatementItem) int64 {
	if item.Amount != nil {
		return *item.Amount
	}
	qty := int64(1)
	if item.Qty != nil {
		qty = *item.Qty
	}
	var unit int64
	if item.UnitPrice != nil {
		unit = *item.UnitPrice
	}
	return qty * unit
}

// CalculateTotals computes the tax-inclusive total. Untaxable lines still
// contribute to the pre-tax total, just not to the taxed base. Tax is
// rounded half-up toward positive infinity (-1.5 yen rounds to -1), the
// mode the buyer is billed with everywhere in the system.
//
// Pure and re-derivable at any time; invoked once at approval time to
// freeze the payment amount and again on demand for display.
func CalculateTotals(items []StatementItem, taxRate float64) Totals {
	var totals Totals
	for _, item := range items {
		amount := ItemAmount(item)
		totals.TotalWithoutTax += amount
		if item.IsTaxable == nil || *item.IsTaxable {
			totals.TaxableSubtotal += amount
		}
	}
	totals.Tax = roundHalfUp(float64(totals.TaxableSubtotal) * taxRate)
	totals.Total = totals.TotalWithoutTax + totals.Tax
	return totals
}

func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// TaxRateForCategory maps a buyer's tax category to the trade's rate.
func TaxRateForCategory(category string) float64 {
	if category == TaxCategoryReduced {
		return ReducedTaxRate
	}
	return DefaultTaxRate
}
