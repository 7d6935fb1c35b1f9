// Package migration keeps the schema in sync with the domain models.
package migration

import (
	"gorm.io/gorm"

	clientdomain "github.com/camille-guillard/invoice-api/internal/client/domain"
	invoicedomain "github.com/camille-guillard/invoice-api/internal/invoice/domain"
)

// Run migrates every persisted model, invoked once at startup before the
// HTTP server accepts traffic.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&clientdomain.Client{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceLine{},
		&invoicedomain.InvoiceCounter{},
	)
}
