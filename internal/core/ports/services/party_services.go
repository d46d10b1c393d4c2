package services

import (
	"context"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
)

// ClientSvcFacade exposes the billed clients.
type ClientSvcFacade interface {
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
}

// PersonSvcFacade exposes the people whose hours are logged.
type PersonSvcFacade interface {
	GetPersonByID(ctx context.Context, personID string) (*domain.Person, error)
	ListPersons(ctx context.Context) ([]domain.Person, error)
}
