// Package service orchestrates the invoicing use cases over the domain model
// and its collaborators.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	clientdomain "github.com/camille-guillard/invoice-api/internal/client/domain"
	"github.com/camille-guillard/invoice-api/internal/clock"
	invoicedomain "github.com/camille-guillard/invoice-api/internal/invoice/domain"
)

type ServiceParam struct {
	fx.In

	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      invoicedomain.Repository
	ClientSvc clientdomain.Service
}

type Service struct {
	log *zap.Logger

	genID     *snowflake.Node
	clock     clock.Clock
	repo      invoicedomain.Repository
	clientSvc clientdomain.Service
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		log: p.Log.Named("invoice.service"),

		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		clientSvc: p.ClientSvc,
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	clientID, err := s.resolveClient(ctx, req.ClientID)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	lines := make([]invoicedomain.InvoiceLine, 0, len(req.Lines))
	for _, raw := range req.Lines {
		line, err := invoicedomain.NewInvoiceLine(raw.Description, raw.Quantity, raw.UnitPrice, raw.VatRate)
		if err != nil {
			return invoicedomain.Invoice{}, err
		}
		lines = append(lines, line)
	}

	date := s.clock.Now()
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}

	invoice, err := invoicedomain.NewInvoice(clientID, date, lines)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	number, err := s.repo.NextInvoiceNumber(ctx, invoice.Date.Year())
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	invoice.ID = s.genID.Generate()
	invoice.Number = number
	invoice.SetTotals(invoicedomain.ComputeTotals(invoice.Lines))
	if req.Metadata != nil {
		invoice.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Save(ctx, invoice); err != nil {
		return invoicedomain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("number", invoice.Number),
		zap.String("client_id", invoice.ClientID.String()),
	)
	return *invoice, nil
}

func (s *Service) MarkAsPaid(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	invoice, err := s.loadByID(ctx, id)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	if err := invoice.MarkAsPaid(); err != nil {
		return invoicedomain.Invoice{}, err
	}
	if err := s.repo.Save(ctx, invoice); err != nil {
		return invoicedomain.Invoice{}, err
	}

	s.log.Info("invoice paid", zap.String("invoice_id", invoice.ID.String()), zap.String("number", invoice.Number))
	return *invoice, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	invoice, err := s.loadByID(ctx, id)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	return *invoice, nil
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoicesRequest) (invoicedomain.ListInvoicesResponse, error) {
	filters, err := buildFilters(req)
	if err != nil {
		return invoicedomain.ListInvoicesResponse{}, err
	}

	var invoices []invoicedomain.Invoice
	if filters.Empty() {
		invoices, err = s.repo.FindAll(ctx)
	} else {
		invoices, err = s.repo.FindByFilters(ctx, filters)
	}
	if err != nil {
		return invoicedomain.ListInvoicesResponse{}, err
	}
	if invoices == nil {
		invoices = []invoicedomain.Invoice{}
	}
	return invoicedomain.ListInvoicesResponse{Invoices: invoices}, nil
}

func (s *Service) Revenue(ctx context.Context, req invoicedomain.RevenueRequest) (invoicedomain.RevenueResponse, error) {
	if req.StartDate == nil || req.EndDate == nil {
		return invoicedomain.RevenueResponse{}, invoicedomain.ErrInvalidDateRange
	}
	start := invoicedomain.NormalizeDate(*req.StartDate)
	end := invoicedomain.NormalizeDate(*req.EndDate)
	if start.After(end) {
		return invoicedomain.RevenueResponse{}, invoicedomain.ErrInvalidDateRange
	}

	invoices, err := s.repo.FindByFilters(ctx, invoicedomain.Filters{
		Status:    invoicedomain.InvoiceStatusPaid,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return invoicedomain.RevenueResponse{}, err
	}

	revenue := decimal.Zero
	excludingTax := decimal.Zero
	vat := decimal.Zero
	for _, invoice := range invoices {
		revenue = revenue.Add(decimal.NewFromFloat(invoice.TotalIncludingTax))
		excludingTax = excludingTax.Add(decimal.NewFromFloat(invoice.TotalExcludingTax))
		vat = vat.Add(decimal.NewFromFloat(invoice.TotalVat))
	}

	return invoicedomain.RevenueResponse{
		StartDate:         start,
		EndDate:           end,
		TotalRevenue:      roundedFloat(revenue),
		TotalExcludingTax: roundedFloat(excludingTax),
		TotalVat:          roundedFloat(vat),
		InvoiceCount:      len(invoices),
	}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	invoice, err := s.loadByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, invoice.ID); err != nil {
		return err
	}
	s.log.Info("invoice deleted", zap.String("invoice_id", invoice.ID.String()), zap.String("number", invoice.Number))
	return nil
}

func (s *Service) loadByID(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	invoiceID, err := parseID(id, invoicedomain.ErrInvalidInvoiceID)
	if err != nil {
		return nil, err
	}
	invoice, err := s.repo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, invoicedomain.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *Service) resolveClient(ctx context.Context, rawID string) (snowflake.ID, error) {
	if strings.TrimSpace(rawID) == "" {
		return 0, invoicedomain.ErrClientIDRequired
	}
	clientID, err := parseID(rawID, invoicedomain.ErrClientIDRequired)
	if err != nil {
		return 0, err
	}

	// Existence is checked at creation time only.
	if _, err := s.clientSvc.GetByID(ctx, clientID.String()); err != nil {
		switch {
		case errors.Is(err, clientdomain.ErrNotFound), errors.Is(err, clientdomain.ErrInvalidID):
			return 0, invoicedomain.ErrClientNotFound
		default:
			return 0, err
		}
	}
	return clientID, nil
}

func buildFilters(req invoicedomain.ListInvoicesRequest) (invoicedomain.Filters, error) {
	var filters invoicedomain.Filters

	if status := strings.TrimSpace(req.Status); status != "" {
		switch invoicedomain.InvoiceStatus(status) {
		case invoicedomain.InvoiceStatusDraft, invoicedomain.InvoiceStatusPaid:
			filters.Status = invoicedomain.InvoiceStatus(status)
		default:
			return invoicedomain.Filters{}, invoicedomain.ErrInvalidStatus
		}
	}

	if rawID := strings.TrimSpace(req.ClientID); rawID != "" {
		clientID, err := parseID(rawID, clientdomain.ErrInvalidID)
		if err != nil {
			return invoicedomain.Filters{}, err
		}
		filters.ClientID = clientID
	}

	filters.StartDate = req.StartDate
	filters.EndDate = req.EndDate
	return filters, nil
}

func parseID(value string, invalidErr error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, invalidErr
	}
	return id, nil
}

func roundedFloat(value decimal.Decimal) float64 {
	f, _ := value.Round(2).Float64()
	return f
}
