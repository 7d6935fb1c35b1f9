// Package render produces printable invoice documents.
package render

import "time"

// RenderInput is the deterministic input used for invoice rendering.
type RenderInput struct {
	Invoice InvoiceView
	Client  ClientView
	Lines   []LineView
}

type InvoiceView struct {
	Number            string
	Status            string
	Date              time.Time
	TotalExcludingTax float64
	TotalVat          float64
	TotalIncludingTax float64
}

type ClientView struct {
	Name    string
	Email   string
	Address string
}

type LineView struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	VatRate     float64
	Total       float64
}

type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}
