package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	"github.com/SscSPs/opahours_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	repo.On("FindClientByID", ctx, testClientID).Return(&domain.Client{ClientID: testClientID, Name: "Acme"}, nil).Once()
	repo.On("FindClientByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("ListClients", ctx).Return(nil, nil).Once()

	svc := services.NewClientService(repo)

	client, err := svc.GetClientByID(ctx, testClientID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", client.Name)

	_, err = svc.GetClientByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.New(apperrors.CodeClientNotFound))

	clients, err := svc.ListClients(ctx)
	require.NoError(t, err)
	assert.NotNil(t, clients)
	assert.Empty(t, clients)
}

func TestPersonService(t *testing.T) {
	ctx := context.Background()
	gst := int64(10)
	repo := new(MockPersonRepository)
	repo.On("FindPersonByID", ctx, testPersonID).Return(&domain.Person{PersonID: testPersonID, AppliesGst: true, GstPercentage: &gst}, nil).Once()
	repo.On("FindPersonByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("ListPersons", ctx).Return(nil, assert.AnError).Once()

	svc := services.NewPersonService(repo)

	person, err := svc.GetPersonByID(ctx, testPersonID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), person.EffectiveGstPercentage())

	_, err = svc.GetPersonByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.New(apperrors.CodePersonNotFound))

	_, err = svc.ListPersons(ctx)
	assert.ErrorIs(t, err, assert.AnError)
}
