package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/camille-guillard/invoice-api/internal/cache"
	clientdomain "github.com/camille-guillard/invoice-api/internal/client/domain"
)

const clientCacheTTL = 30 * time.Second

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID   *snowflake.Node
	clients cache.Cache[snowflake.ID, clientdomain.Client]
}

func NewService(p ServiceParam) clientdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("client.service"),

		genID:   p.GenID,
		clients: cache.NewTTLCache[snowflake.ID, clientdomain.Client](clientCacheTTL),
	}
}

func (s *Service) Create(ctx context.Context, req clientdomain.CreateClientRequest) (clientdomain.Client, error) {
	name, email, address, err := validateClientFields(req.Name, req.Email, req.Address)
	if err != nil {
		return clientdomain.Client{}, err
	}

	now := time.Now().UTC()
	record := clientdomain.Client{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return clientdomain.Client{}, err
	}

	s.log.Info("client created", zap.String("client_id", record.ID.String()))
	return record, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (clientdomain.Client, error) {
	clientID, err := parseID(id)
	if err != nil {
		return clientdomain.Client{}, clientdomain.ErrInvalidID
	}

	if cached, ok := s.clients.Get(clientID); ok {
		return cached, nil
	}

	record, err := s.loadByID(ctx, clientID)
	if err != nil {
		return clientdomain.Client{}, err
	}

	s.clients.Set(clientID, record)
	return record, nil
}

func (s *Service) List(ctx context.Context) (clientdomain.ListClientsResponse, error) {
	var records []clientdomain.Client
	if err := s.db.WithContext(ctx).
		Order("name ASC, id ASC").
		Find(&records).Error; err != nil {
		return clientdomain.ListClientsResponse{}, err
	}
	return clientdomain.ListClientsResponse{Clients: records}, nil
}

func (s *Service) Update(ctx context.Context, id string, req clientdomain.UpdateClientRequest) (clientdomain.Client, error) {
	clientID, err := parseID(id)
	if err != nil {
		return clientdomain.Client{}, clientdomain.ErrInvalidID
	}

	name, email, address, err := validateClientFields(req.Name, req.Email, req.Address)
	if err != nil {
		return clientdomain.Client{}, err
	}

	record, err := s.loadByID(ctx, clientID)
	if err != nil {
		return clientdomain.Client{}, err
	}

	record.Name = name
	record.Email = email
	record.Address = address
	record.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return clientdomain.Client{}, err
	}

	s.clients.Invalidate(clientID)
	return record, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	clientID, err := parseID(id)
	if err != nil {
		return clientdomain.ErrInvalidID
	}

	if _, err := s.loadByID(ctx, clientID); err != nil {
		return err
	}

	// Refuse to orphan invoices; invoice deletion is an explicit operation.
	var invoiceCount int64
	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM invoices WHERE client_id = ?`,
		clientID,
	).Scan(&invoiceCount).Error; err != nil {
		return err
	}
	if invoiceCount > 0 {
		return clientdomain.ErrHasInvoices
	}

	if err := s.db.WithContext(ctx).
		Delete(&clientdomain.Client{}, "id = ?", clientID).Error; err != nil {
		return err
	}

	s.clients.Invalidate(clientID)
	s.log.Info("client deleted", zap.String("client_id", clientID.String()))
	return nil
}

func (s *Service) loadByID(ctx context.Context, id snowflake.ID) (clientdomain.Client, error) {
	var record clientdomain.Client
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return clientdomain.Client{}, clientdomain.ErrNotFound
		}
		return clientdomain.Client{}, err
	}
	return record, nil
}

func validateClientFields(name, email, address string) (string, string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", "", clientdomain.ErrInvalidName
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "", "", "", clientdomain.ErrInvalidEmail
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return "", "", "", clientdomain.ErrInvalidAddress
	}
	return name, strings.ToLower(email), address, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, clientdomain.ErrInvalidID
	}
	return id, nil
}
