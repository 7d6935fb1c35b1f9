package domain

import (
	"context"
	"errors"
)

type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type UpdateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type ListClientsResponse struct {
	Clients []Client `json:"clients"`
}

// Service exposes client management. Invoicing only depends on GetByID for
// existence checks.
type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	GetByID(ctx context.Context, id string) (Client, error)
	List(ctx context.Context) (ListClientsResponse, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID      = errors.New("invalid_client_id")
	ErrNotFound       = errors.New("client_not_found")
	ErrInvalidName    = errors.New("invalid_client_name")
	ErrInvalidEmail   = errors.New("invalid_client_email")
	ErrInvalidAddress = errors.New("invalid_client_address")
	ErrHasInvoices    = errors.New("client_has_invoices")
)
