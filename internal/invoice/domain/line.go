package domain

import (
	"math"
	"strings"
)

// VatRates is the closed set of accepted VAT percentages.
var VatRates = []float64{0, 5.5, 10, 20}

// IsValidVatRate reports whether rate belongs to the accepted VAT set.
func IsValidVatRate(rate float64) bool {
	for _, allowed := range VatRates {
		if rate == allowed {
			return true
		}
	}
	return false
}

// NewInvoiceLine validates and constructs a billable line. No partially valid
// line is ever observable.
func NewInvoiceLine(description string, quantity, unitPrice, vatRate float64) (InvoiceLine, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return InvoiceLine{}, ErrInvalidDescription
	}
	if !isPositiveNumber(quantity) {
		return InvoiceLine{}, ErrInvalidQuantity
	}
	if !isPositiveNumber(unitPrice) {
		return InvoiceLine{}, ErrInvalidUnitPrice
	}
	if !IsValidVatRate(vatRate) {
		return InvoiceLine{}, ErrInvalidVatRate
	}

	return InvoiceLine{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		VatRate:     vatRate,
	}, nil
}

func isPositiveNumber(value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value > 0
}
