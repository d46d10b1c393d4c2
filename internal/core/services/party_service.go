package services

import (
	"context"
	"errors"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
)

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a read-only client service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, opts ...ServiceOption) portssvc.ClientSvcFacade {
	return &clientService{BaseService: newBaseService(opts), clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeClientNotFound, err)
		}
		s.LogError(ctx, err, "Failed to find client")
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, err
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return clients, nil
}

type personService struct {
	BaseService
	personRepo portsrepo.PersonRepositoryFacade
}

// NewPersonService creates a read-only person service.
func NewPersonService(personRepo portsrepo.PersonRepositoryFacade, opts ...ServiceOption) portssvc.PersonSvcFacade {
	return &personService{BaseService: newBaseService(opts), personRepo: personRepo}
}

var _ portssvc.PersonSvcFacade = (*personService)(nil)

func (s *personService) GetPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	person, err := s.personRepo.FindPersonByID(ctx, personID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.CodePersonNotFound, err)
		}
		s.LogError(ctx, err, "Failed to find person")
		return nil, err
	}
	return person, nil
}

func (s *personService) ListPersons(ctx context.Context) ([]domain.Person, error) {
	persons, err := s.personRepo.ListPersons(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list persons")
		return nil, err
	}
	if persons == nil {
		persons = []domain.Person{}
	}
	return persons, nil
}
