package domain

import (
	"errors"
	"math"
	"testing"
)

func TestNewInvoiceLineValid(t *testing.T) {
	line, err := NewInvoiceLine("consulting", 3, 10.33, 20)
	if err != nil {
		t.Fatalf("expected valid line, got %v", err)
	}
	if line.Description != "consulting" {
		t.Fatalf("expected description %q, got %q", "consulting", line.Description)
	}
	if line.Quantity != 3 || line.UnitPrice != 10.33 || line.VatRate != 20 {
		t.Fatalf("unexpected line fields: %+v", line)
	}
}

func TestNewInvoiceLineTrimsDescription(t *testing.T) {
	line, err := NewInvoiceLine("  hosting  ", 1, 5, 0)
	if err != nil {
		t.Fatalf("expected valid line, got %v", err)
	}
	if line.Description != "hosting" {
		t.Fatalf("expected trimmed description, got %q", line.Description)
	}
}

func TestNewInvoiceLineRejections(t *testing.T) {
	tests := []struct {
		name        string
		description string
		quantity    float64
		unitPrice   float64
		vatRate     float64
		want        error
	}{
		{"empty description", "", 1, 10, 20, ErrInvalidDescription},
		{"blank description", "   ", 1, 10, 20, ErrInvalidDescription},
		{"zero quantity", "x", 0, 10, 20, ErrInvalidQuantity},
		{"negative quantity", "x", -1, 10, 20, ErrInvalidQuantity},
		{"nan quantity", "x", math.NaN(), 10, 20, ErrInvalidQuantity},
		{"zero unit price", "x", 1, 0, 20, ErrInvalidUnitPrice},
		{"negative unit price", "x", 1, -0.01, 20, ErrInvalidUnitPrice},
		{"infinite unit price", "x", 1, math.Inf(1), 20, ErrInvalidUnitPrice},
		{"vat rate 15", "x", 1, 10, 15, ErrInvalidVatRate},
		{"negative vat rate", "x", 1, 10, -1, ErrInvalidVatRate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInvoiceLine(tc.description, tc.quantity, tc.unitPrice, tc.vatRate)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestVatRateSet(t *testing.T) {
	for _, rate := range []float64{0, 5.5, 10, 20} {
		if !IsValidVatRate(rate) {
			t.Fatalf("expected %v to be a valid VAT rate", rate)
		}
	}
	for _, rate := range []float64{1, 5.6, 19.6, 21, 100} {
		if IsValidVatRate(rate) {
			t.Fatalf("expected %v to be rejected", rate)
		}
	}
}
