// Package domain contains the invoice aggregate, its monetary calculator
// and the contracts the invoicing use cases depend on.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	InvoiceStatusPaid  InvoiceStatus = "PAID"
)

// Invoice aggregates billable lines for a client. Totals are set once at
// creation by the calculator and never recomputed; lines are immutable after
// construction.
type Invoice struct {
	ID       snowflake.ID  `gorm:"primaryKey" json:"id"`
	Number   string        `gorm:"type:text;not null;uniqueIndex" json:"number"`
	Date     time.Time     `gorm:"not null;index" json:"date"`
	Status   InvoiceStatus `gorm:"type:text;not null;default:DRAFT" json:"status"`
	ClientID snowflake.ID  `gorm:"not null;index" json:"client_id"`

	Lines []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines"`

	TotalExcludingTax float64 `gorm:"not null;default:0" json:"total_excluding_tax"`
	TotalVat          float64 `gorm:"not null;default:0" json:"total_vat"`
	TotalIncludingTax float64 `gorm:"not null;default:0" json:"total_including_tax"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceLine is a single billable line. Valid once constructed through
// NewInvoiceLine; never mutated afterwards.
type InvoiceLine struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"-"`
	InvoiceID snowflake.ID `gorm:"not null;index" json:"-"`
	Position  int          `gorm:"not null;default:0" json:"-"`

	Description string  `gorm:"type:text;not null" json:"description"`
	Quantity    float64 `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	VatRate     float64 `gorm:"not null" json:"vat_rate"`
}

// TableName sets the database table name.
func (InvoiceLine) TableName() string { return "invoice_lines" }

// InvoiceCounter backs per-year invoice number allocation. The sequence is
// advanced with a single atomic upsert, never by counting invoices.
type InvoiceCounter struct {
	Year int   `gorm:"primaryKey"`
	Seq  int64 `gorm:"not null;default:0"`
}

// TableName sets the database table name.
func (InvoiceCounter) TableName() string { return "invoice_counters" }

// NormalizeDate truncates a timestamp to its calendar date at midnight UTC.
// All stored invoice dates and all range-filter bounds go through this, so a
// boundary date matches regardless of any embedded time-of-day.
func NormalizeDate(value time.Time) time.Time {
	value = value.UTC()
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
