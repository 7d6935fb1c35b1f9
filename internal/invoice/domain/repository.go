package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Filters narrows invoice queries. Provided fields combine with AND; date
// bounds are inclusive on both ends at calendar-date granularity.
type Filters struct {
	Status    InvoiceStatus
	ClientID  snowflake.ID
	StartDate *time.Time
	EndDate   *time.Time
}

// Empty reports whether no filter field is set.
func (f Filters) Empty() bool {
	return f.Status == "" && f.ClientID == 0 && f.StartDate == nil && f.EndDate == nil
}

// Repository is the persistence collaborator of the invoicing use cases.
// Find methods return nil without error when no record matches.
type Repository interface {
	// Save upserts an invoice and its lines, keyed by id.
	Save(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id snowflake.ID) (*Invoice, error)
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	// FindAll returns every invoice ordered by date descending.
	FindAll(ctx context.Context) ([]Invoice, error)
	// FindByFilters returns matching invoices ordered by date descending.
	FindByFilters(ctx context.Context, filters Filters) ([]Invoice, error)
	// NextInvoiceNumber allocates the next INV-<year>-<seq> number. The
	// per-year sequence starts at 1, never gaps and never repeats, even
	// under concurrent allocation.
	NextInvoiceNumber(ctx context.Context, year int) (string, error)
	Delete(ctx context.Context, id snowflake.ID) error
	CountByClient(ctx context.Context, clientID snowflake.ID) (int64, error)
}
