package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// NewInvoice constructs a draft invoice for the given client and effective
// date. The date must already be resolved by the caller (requested date or
// clock "now") and is normalized to calendar-date granularity here. Lines must
// have been constructed through NewInvoiceLine.
func NewInvoice(clientID snowflake.ID, date time.Time, lines []InvoiceLine) (*Invoice, error) {
	if clientID == 0 {
		return nil, ErrClientIDRequired
	}
	if len(lines) == 0 {
		return nil, ErrLinesRequired
	}

	positioned := make([]InvoiceLine, len(lines))
	copy(positioned, lines)
	for i := range positioned {
		positioned[i].Position = i
	}

	return &Invoice{
		Date:     NormalizeDate(date),
		Status:   InvoiceStatusDraft,
		ClientID: clientID,
		Lines:    positioned,
	}, nil
}

// MarkAsPaid transitions DRAFT to PAID. The transition is monotonic; a paid
// invoice can never be paid again or reverted.
func (i *Invoice) MarkAsPaid() error {
	if i.Status == InvoiceStatusPaid {
		return ErrAlreadyPaid
	}
	i.Status = InvoiceStatusPaid
	return nil
}

// IsDraft reports whether the invoice has not been paid yet.
func (i *Invoice) IsDraft() bool { return i.Status == InvoiceStatusDraft }

// IsPaid reports whether the invoice has been paid.
func (i *Invoice) IsPaid() bool { return i.Status == InvoiceStatusPaid }

// SetTotals stores calculator output on the invoice. It is a trusted setter
// invoked by the create orchestration right after construction; the calculator
// is the sole source of truth for the amounts.
func (i *Invoice) SetTotals(totals Totals) {
	i.TotalExcludingTax = totals.ExcludingTax
	i.TotalVat = totals.Vat
	i.TotalIncludingTax = totals.IncludingTax
}
