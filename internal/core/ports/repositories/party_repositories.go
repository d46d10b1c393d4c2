package repositories

import (
	"context"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
)

// ClientRepositoryFacade reads the clients work is billed to.
type ClientRepositoryFacade interface {
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
}

// PersonRepositoryFacade reads the people whose hours are logged.
type PersonRepositoryFacade interface {
	FindPersonByID(ctx context.Context, personID string) (*domain.Person, error)
	ListPersons(ctx context.Context) ([]domain.Person, error)
}
