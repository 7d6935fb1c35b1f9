package domain

import "github.com/shopspring/decimal"

// Totals holds the three derived monetary amounts of an invoice, each rounded
// to 2 decimal places.
type Totals struct {
	ExcludingTax float64 `json:"total_excluding_tax"`
	Vat          float64 `json:"total_vat"`
	IncludingTax float64 `json:"total_including_tax"`
}

var oneHundred = decimal.NewFromInt(100)

// LineTotal is the pre-tax amount of a line: round2(quantity * unitPrice).
func LineTotal(line InvoiceLine) float64 {
	return toFloat(lineTotal(line))
}

// LineVat is the VAT amount of a line: round2(lineTotal * vatRate / 100).
// VAT is derived from the rounded line total, not the raw product.
func LineVat(line InvoiceLine) float64 {
	return toFloat(lineVat(line))
}

// ComputeTotals derives the invoice totals from its lines. Rounding happens at
// line granularity first, then once more on each sum. Summing unrounded line
// amounts would drift for rates like 5.5% on fractional prices.
func ComputeTotals(lines []InvoiceLine) Totals {
	excludingTax := decimal.Zero
	vat := decimal.Zero
	for _, line := range lines {
		excludingTax = excludingTax.Add(lineTotal(line))
		vat = vat.Add(lineVat(line))
	}

	excludingTax = round2(excludingTax)
	vat = round2(vat)
	includingTax := round2(excludingTax.Add(vat))

	return Totals{
		ExcludingTax: toFloat(excludingTax),
		Vat:          toFloat(vat),
		IncludingTax: toFloat(includingTax),
	}
}

func lineTotal(line InvoiceLine) decimal.Decimal {
	quantity := decimal.NewFromFloat(line.Quantity)
	unitPrice := decimal.NewFromFloat(line.UnitPrice)
	return round2(quantity.Mul(unitPrice))
}

func lineVat(line InvoiceLine) decimal.Decimal {
	rate := decimal.NewFromFloat(line.VatRate)
	return round2(lineTotal(line).Mul(rate).Div(oneHundred))
}

// round2 rounds half away from zero at 2 decimal places.
func round2(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}

func toFloat(value decimal.Decimal) float64 {
	f, _ := value.Float64()
	return f
}
