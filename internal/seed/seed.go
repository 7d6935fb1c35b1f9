// Package seed bootstraps development data.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	clientdomain "github.com/camille-guillard/invoice-api/internal/client/domain"
)

const (
	demoClientName    = "Acme Corp"
	demoClientEmail   = "billing@acme.example"
	demoClientAddress = "1 Market Street, Springfield"
)

// EnsureDemoClient seeds a client to invoice against on first boot. Meant for
// development databases only; production never invokes it.
func EnsureDemoClient(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client clientdomain.Client
		err := tx.Where("email = ?", demoClientEmail).First(&client).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		return tx.Create(&clientdomain.Client{
			ID:        node.Generate(),
			Name:      demoClientName,
			Email:     demoClientEmail,
			Address:   demoClientAddress,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error
	})
}
