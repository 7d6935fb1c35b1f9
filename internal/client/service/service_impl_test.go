package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	clientdomain "github.com/camille-guillard/invoice-api/internal/client/domain"
	invoicedomain "github.com/camille-guillard/invoice-api/internal/invoice/domain"
	"github.com/camille-guillard/invoice-api/internal/migration"
)

func setupClientTest(t *testing.T) (clientdomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := migration.Run(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	svc := NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
	return svc, db
}

func validRequest() clientdomain.CreateClientRequest {
	return clientdomain.CreateClientRequest{
		Name:    "Acme",
		Email:   "Billing@Acme.example",
		Address: "1 rue de la Paix, Paris",
	}
}

func TestCreateClientNormalizesFields(t *testing.T) {
	svc, _ := setupClientTest(t)

	record, err := svc.Create(context.Background(), clientdomain.CreateClientRequest{
		Name:    "  Acme  ",
		Email:   "  Billing@Acme.example ",
		Address: " 1 rue de la Paix ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.Name != "Acme" {
		t.Fatalf("expected trimmed name, got %q", record.Name)
	}
	if record.Email != "billing@acme.example" {
		t.Fatalf("expected lowercased email, got %q", record.Email)
	}
	if record.Address != "1 rue de la Paix" {
		t.Fatalf("expected trimmed address, got %q", record.Address)
	}
	if record.ID == 0 {
		t.Fatalf("expected generated id")
	}
}

func TestCreateClientValidation(t *testing.T) {
	svc, _ := setupClientTest(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  clientdomain.CreateClientRequest
		want error
	}{
		{"empty name", clientdomain.CreateClientRequest{Email: "a@b.c", Address: "x"}, clientdomain.ErrInvalidName},
		{"empty email", clientdomain.CreateClientRequest{Name: "a", Address: "x"}, clientdomain.ErrInvalidEmail},
		{"email without at", clientdomain.CreateClientRequest{Name: "a", Email: "nope", Address: "x"}, clientdomain.ErrInvalidEmail},
		{"empty address", clientdomain.CreateClientRequest{Name: "a", Email: "a@b.c"}, clientdomain.ErrInvalidAddress},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestGetClientByID(t *testing.T) {
	svc, _ := setupClientTest(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := svc.GetByID(ctx, record.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found.ID != record.ID || found.Email != "billing@acme.example" {
		t.Fatalf("unexpected client: %+v", found)
	}

	if _, err := svc.GetByID(ctx, "garbage"); !errors.Is(err, clientdomain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.GetByID(ctx, "987654321"); !errors.Is(err, clientdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateClientInvalidatesCache(t *testing.T) {
	svc, _ := setupClientTest(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Prime the read cache.
	if _, err := svc.GetByID(ctx, record.ID.String()); err != nil {
		t.Fatalf("get: %v", err)
	}

	updated, err := svc.Update(ctx, record.ID.String(), clientdomain.UpdateClientRequest{
		Name:    "Acme Corp",
		Email:   "accounts@acme.example",
		Address: "2 avenue Foch",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Acme Corp" {
		t.Fatalf("unexpected name: %q", updated.Name)
	}

	found, err := svc.GetByID(ctx, record.ID.String())
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if found.Name != "Acme Corp" || found.Email != "accounts@acme.example" {
		t.Fatalf("stale read after update: %+v", found)
	}
}

func TestListClientsOrderedByName(t *testing.T) {
	svc, _ := setupClientTest(t)
	ctx := context.Background()

	for _, name := range []string{"Zenith", "Acme", "Midgard"} {
		req := validRequest()
		req.Name = name
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	resp, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Clients) != 3 {
		t.Fatalf("expected 3 clients, got %d", len(resp.Clients))
	}
	want := []string{"Acme", "Midgard", "Zenith"}
	for i, name := range want {
		if resp.Clients[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, resp.Clients[i].Name)
		}
	}
}

func TestDeleteClient(t *testing.T) {
	svc, _ := setupClientTest(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, record.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, record.ID.String()); !errors.Is(err, clientdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, record.ID.String()); !errors.Is(err, clientdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDeleteClientWithInvoicesRefused(t *testing.T) {
	svc, db := setupClientTest(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	invoice := invoicedomain.Invoice{
		ID:       9001,
		Number:   "INV-2025-001",
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:   invoicedomain.InvoiceStatusDraft,
		ClientID: record.ID,
	}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("insert invoice: %v", err)
	}

	if err := svc.Delete(ctx, record.ID.String()); !errors.Is(err, clientdomain.ErrHasInvoices) {
		t.Fatalf("expected ErrHasInvoices, got %v", err)
	}
	if _, err := svc.GetByID(ctx, record.ID.String()); err != nil {
		t.Fatalf("client should survive refused delete: %v", err)
	}
}
