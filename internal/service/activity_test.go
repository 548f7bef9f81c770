package service_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/crmboard/internal/audit"
	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/middleware"
	"github.com/dangerclosesec/crmboard/internal/mocks"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/dangerclosesec/crmboard/internal/repository"
	"github.com/dangerclosesec/crmboard/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestActivityRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockActivityLogRepositoryIface(ctrl)
	svc := service.NewActivityService(repo)
	orgID := uuid.New()
	entityID := uuid.New()

	ctx := middleware.WithPrincipal(context.Background(), middleware.Principal{UserID: "user-1", OrganizationID: orgID})

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, log *model.ActivityLog) error {
			assert.Equal(t, orgID, log.OrganizationID)
			assert.Equal(t, "user-1", log.ActorID)
			assert.Equal(t, model.ActionCardMove, log.Action)
			assert.Equal(t, entityID.String(), log.EntityID)
			assert.Equal(t, 2, log.Context["toPosition"])
			assert.False(t, log.CreatedAt.IsZero())
			return nil
		})

	err := svc.Record(ctx, audit.Entry{
		OrganizationID: orgID,
		Action:         model.ActionCardMove,
		EntityType:     model.EntityCard,
		EntityID:       entityID.String(),
		Context:        map[string]interface{}{"toPosition": 2},
	})
	require.NoError(t, err)
}

func TestActivityQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockActivityLogRepositoryIface(ctrl)
	svc := service.NewActivityService(repo)
	orgID := uuid.New()

	repo.EXPECT().
		Query(gomock.Any(), repository.QueryParams{OrganizationID: orgID, EntityType: model.EntityCard, Limit: 20}).
		Return([]model.ActivityLog{{Action: model.ActionCardCreate}}, int64(1), nil)

	logs, total, err := svc.Query(context.Background(), orgID, service.ActivityQuery{EntityType: model.EntityCard, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, int64(1), total)

	_, _, err = svc.Query(context.Background(), orgID, service.ActivityQuery{Limit: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
