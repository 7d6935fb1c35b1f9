package domain

import (
	"errors"
	"testing"
	"time"
)

func mustLine(t *testing.T, description string, quantity, unitPrice, vatRate float64) InvoiceLine {
	t.Helper()
	line, err := NewInvoiceLine(description, quantity, unitPrice, vatRate)
	if err != nil {
		t.Fatalf("line construction failed: %v", err)
	}
	return line
}

func TestNewInvoiceDefaults(t *testing.T) {
	date := time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)
	invoice, err := NewInvoice(42, date, []InvoiceLine{mustLine(t, "work", 1, 100, 20)})
	if err != nil {
		t.Fatalf("expected invoice, got %v", err)
	}

	if invoice.Status != InvoiceStatusDraft {
		t.Fatalf("expected DRAFT, got %s", invoice.Status)
	}
	if !invoice.IsDraft() || invoice.IsPaid() {
		t.Fatalf("expected draft state")
	}
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !invoice.Date.Equal(want) {
		t.Fatalf("expected date normalized to %v, got %v", want, invoice.Date)
	}
	if invoice.TotalExcludingTax != 0 || invoice.TotalVat != 0 || invoice.TotalIncludingTax != 0 {
		t.Fatalf("expected zero totals before SetTotals")
	}
	for i, line := range invoice.Lines {
		if line.Position != i {
			t.Fatalf("expected position %d, got %d", i, line.Position)
		}
	}
}

func TestNewInvoiceRequiresClient(t *testing.T) {
	_, err := NewInvoice(0, time.Now(), []InvoiceLine{mustLine(t, "work", 1, 100, 20)})
	if !errors.Is(err, ErrClientIDRequired) {
		t.Fatalf("expected ErrClientIDRequired, got %v", err)
	}
}

func TestNewInvoiceRequiresLines(t *testing.T) {
	_, err := NewInvoice(42, time.Now(), nil)
	if !errors.Is(err, ErrLinesRequired) {
		t.Fatalf("expected ErrLinesRequired, got %v", err)
	}
	_, err = NewInvoice(42, time.Now(), []InvoiceLine{})
	if !errors.Is(err, ErrLinesRequired) {
		t.Fatalf("expected ErrLinesRequired, got %v", err)
	}
}

func TestMarkAsPaidIsMonotonic(t *testing.T) {
	invoice, err := NewInvoice(42, time.Now(), []InvoiceLine{mustLine(t, "work", 1, 100, 20)})
	if err != nil {
		t.Fatalf("expected invoice, got %v", err)
	}

	if err := invoice.MarkAsPaid(); err != nil {
		t.Fatalf("first MarkAsPaid failed: %v", err)
	}
	if !invoice.IsPaid() {
		t.Fatalf("expected PAID after MarkAsPaid")
	}

	for attempt := 0; attempt < 3; attempt++ {
		if err := invoice.MarkAsPaid(); !errors.Is(err, ErrAlreadyPaid) {
			t.Fatalf("attempt %d: expected ErrAlreadyPaid, got %v", attempt, err)
		}
	}
	if invoice.Status != InvoiceStatusPaid {
		t.Fatalf("status changed on failed transition: %s", invoice.Status)
	}
}

func TestSetTotals(t *testing.T) {
	invoice, err := NewInvoice(42, time.Now(), []InvoiceLine{mustLine(t, "work", 2, 100, 20)})
	if err != nil {
		t.Fatalf("expected invoice, got %v", err)
	}

	invoice.SetTotals(Totals{ExcludingTax: 200, Vat: 40, IncludingTax: 240})
	if invoice.TotalExcludingTax != 200 || invoice.TotalVat != 40 || invoice.TotalIncludingTax != 240 {
		t.Fatalf("unexpected totals: %+v", invoice)
	}
}

func TestNormalizeDate(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	value := time.Date(2025, 6, 1, 0, 30, 0, 0, paris) // 2025-05-31 23:30 UTC
	got := NormalizeDate(value)
	want := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
