package domain

import (
	"context"
	"errors"
	"time"
)

// CreateInvoiceLineRequest carries raw line data; each line is validated
// independently through NewInvoiceLine.
type CreateInvoiceLineRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	VatRate     float64 `json:"vat_rate"`
}

type CreateInvoiceRequest struct {
	ClientID string                     `json:"client_id"`
	Date     *time.Time                 `json:"date,omitempty"`
	Lines    []CreateInvoiceLineRequest `json:"lines"`
	Metadata map[string]any             `json:"metadata,omitempty"`
}

// ListInvoicesRequest filters are conjunctive; date bounds are inclusive at
// calendar-date granularity. All zero values means unfiltered.
type ListInvoicesRequest struct {
	Status    string
	ClientID  string
	StartDate *time.Time
	EndDate   *time.Time
}

type ListInvoicesResponse struct {
	Invoices []Invoice `json:"invoices"`
}

type RevenueRequest struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// RevenueResponse aggregates paid invoices inside the requested range. Each
// sum is rounded to 2 decimals; an empty result set yields zero sums and
// count 0.
type RevenueResponse struct {
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	TotalRevenue      float64   `json:"total_revenue"`
	TotalExcludingTax float64   `json:"total_excluding_tax"`
	TotalVat          float64   `json:"total_vat"`
	InvoiceCount      int       `json:"invoice_count"`
}

// Service exposes the invoicing use cases.
type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	MarkAsPaid(ctx context.Context, id string) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	List(ctx context.Context, req ListInvoicesRequest) (ListInvoicesResponse, error)
	Revenue(ctx context.Context, req RevenueRequest) (RevenueResponse, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidInvoiceID   = errors.New("invalid_invoice_id")
	ErrInvoiceNotFound    = errors.New("invoice_not_found")
	ErrClientIDRequired   = errors.New("client_id_required")
	ErrClientNotFound     = errors.New("client_not_found")
	ErrLinesRequired      = errors.New("invoice_lines_required")
	ErrInvalidDescription = errors.New("invalid_line_description")
	ErrInvalidQuantity    = errors.New("invalid_line_quantity")
	ErrInvalidUnitPrice   = errors.New("invalid_line_unit_price")
	ErrInvalidVatRate     = errors.New("invalid_vat_rate")
	ErrAlreadyPaid        = errors.New("invoice_already_paid")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidDateRange   = errors.New("invalid_date_range")
)
