// Package repository implements the invoice persistence collaborator on gorm.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	invoicedomain "github.com/camille-guillard/invoice-api/internal/invoice/domain"
)

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) invoicedomain.Repository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Save(ctx context.Context, invoice *invoicedomain.Invoice) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(invoice).Error
}

func (r *GormRepository) FindByID(ctx context.Context, id snowflake.ID) (*invoicedomain.Invoice, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *GormRepository) FindByNumber(ctx context.Context, number string) (*invoicedomain.Invoice, error) {
	return r.findOne(ctx, "number = ?", number)
}

func (r *GormRepository) FindAll(ctx context.Context) ([]invoicedomain.Invoice, error) {
	var invoices []invoicedomain.Invoice
	err := r.withLines(ctx).
		Order("date DESC, id DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *GormRepository) FindByFilters(ctx context.Context, filters invoicedomain.Filters) ([]invoicedomain.Invoice, error) {
	query := r.withLines(ctx)

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.ClientID != 0 {
		query = query.Where("client_id = ?", filters.ClientID)
	}
	if filters.StartDate != nil {
		query = query.Where("date >= ?", invoicedomain.NormalizeDate(*filters.StartDate))
	}
	if filters.EndDate != nil {
		// Inclusive upper bound at date granularity, whatever time-of-day
		// the caller embedded.
		upper := invoicedomain.NormalizeDate(*filters.EndDate).AddDate(0, 0, 1)
		query = query.Where("date < ?", upper)
	}

	var invoices []invoicedomain.Invoice
	if err := query.Order("date DESC, id DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// NextInvoiceNumber advances the per-year counter with a single upsert.
// Counting existing invoices instead would race between two concurrent
// creations; the counter row makes the database serialize allocations.
func (r *GormRepository) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	var seq int64
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO invoice_counters (year, seq) VALUES (?, 1)
		 ON CONFLICT (year) DO UPDATE SET seq = invoice_counters.seq + 1
		 RETURNING seq`,
		year,
	).Scan(&seq).Error
	if err != nil {
		return "", err
	}
	return FormatInvoiceNumber(year, seq), nil
}

func (r *GormRepository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&invoicedomain.InvoiceLine{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&invoicedomain.Invoice{}, "id = ?", id).Error
	})
}

func (r *GormRepository) CountByClient(ctx context.Context, clientID snowflake.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRepository) findOne(ctx context.Context, condition string, value any) (*invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice
	err := r.withLines(ctx).First(&invoice, condition, value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *GormRepository) withLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// FormatInvoiceNumber renders INV-<year>-<seq> with the sequence zero-padded
// to at least 3 digits.
func FormatInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("INV-%d-%03d", year, seq)
}
