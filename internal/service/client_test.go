package service_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/mocks"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/dangerclosesec/crmboard/internal/repository"
	"github.com/dangerclosesec/crmboard/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateClient(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("normalizes the email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockClientRepositoryIface(ctrl)
		audit := &recordingAudit{}
		svc := service.NewClientService(repo, audit)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *model.Client) error {
				assert.Equal(t, "ada@acme.test", c.Email)
				assert.Equal(t, orgID, c.OrganizationID)
				c.ID = uuid.New()
				return nil
			})

		client, err := svc.CreateClient(ctx, orgID, service.CreateClientInput{Name: "Ada", Email: " Ada@Acme.test"})
		require.NoError(t, err)
		assert.Equal(t, "Ada", client.Name)
		assert.Equal(t, []string{model.ActionClientCreate}, audit.actions())
	})

	t.Run("duplicate email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockClientRepositoryIface(ctrl)
		audit := &recordingAudit{}
		svc := service.NewClientService(repo, audit)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrClientEmailExists)

		_, err := svc.CreateClient(ctx, orgID, service.CreateClientInput{Name: "Ada", Email: "ada@acme.test"})
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Empty(t, audit.actions())
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.NewClientService(mocks.NewMockClientRepositoryIface(ctrl), nil)

		_, err := svc.CreateClient(ctx, orgID, service.CreateClientInput{ValueUSD: -1})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{
			"name: failed required",
			"email: failed required",
			"valueUsd: failed gte=0",
		}, verr.Details())
	})
}

func TestListClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockClientRepositoryIface(ctrl)
	svc := service.NewClientService(repo, nil)
	orgID := uuid.New()

	repo.EXPECT().
		List(gomock.Any(), orgID, repository.ClientQuery{Search: "acme", Limit: 200, Offset: 10}).
		Return([]model.Client{{Name: "Ada"}}, int64(11), nil)

	clients, total, err := svc.ListClients(context.Background(), orgID, service.ListClientsInput{Search: " acme ", Limit: 5000, Offset: 10})
	require.NoError(t, err)
	assert.Len(t, clients, 1)
	assert.Equal(t, int64(11), total)

	_, _, err = svc.ListClients(context.Background(), orgID, service.ListClientsInput{Offset: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
