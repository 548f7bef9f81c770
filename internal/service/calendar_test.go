package service_test

import (
	"context"
	"testing"
	"time"

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

func TestCreateEvents(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.FixedZone("CET", 3600))

	t.Run("bulk create in UTC", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockCalendarRepositoryIface(ctrl)
		svc := service.NewCalendarService(repo)

		repo.EXPECT().CreateMany(gomock.Any(), gomock.Len(2)).
			DoAndReturn(func(_ context.Context, events []*model.CalendarEvent) error {
				for _, e := range events {
					assert.Equal(t, time.UTC, e.StartsAt.Location())
					assert.Equal(t, orgID, e.OrganizationID)
				}
				return nil
			})

		events, err := svc.CreateEvents(ctx, orgID, []service.CreateEventInput{
			{Title: "Kickoff", StartsAt: start, EndsAt: start.Add(time.Hour)},
			{Title: "Review", StartsAt: start, EndsAt: start, ReminderMinutes: ptr(15), ReminderEmail: ptr("ada@acme.test")},
		})
		require.NoError(t, err)
		assert.Equal(t, 8, events[0].StartsAt.Hour())
	})

	t.Run("end before start", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.NewCalendarService(mocks.NewMockCalendarRepositoryIface(ctrl))

		_, err := svc.CreateEvents(ctx, orgID, []service.CreateEventInput{
			{Title: "Backwards", StartsAt: start, EndsAt: start.Add(-time.Minute)},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidEventTime)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("reminder lead beyond four weeks", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.NewCalendarService(mocks.NewMockCalendarRepositoryIface(ctrl))

		_, err := svc.CreateEvents(ctx, orgID, []service.CreateEventInput{
			{Title: "Renewal", StartsAt: start, EndsAt: start.Add(time.Hour), ReminderMinutes: ptr(model.MaxReminderMinutes + 1)},
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "reminderMinutes", verr.Fields[0].Field)
		assert.Equal(t, "lte=40320", verr.Fields[0].Rule)

		_, err = svc.UpdateEvent(ctx, orgID, uuid.New(), service.UpdateEventInput{ReminderMinutes: ptr(model.MaxReminderMinutes + 1)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("nothing to create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.NewCalendarService(mocks.NewMockCalendarRepositoryIface(ctrl))

		_, err := svc.CreateEvents(ctx, orgID, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyBatch)
	})
}

func TestUpdateEventChecksTheMergedRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCalendarRepositoryIface(ctrl)
	svc := service.NewCalendarService(repo)
	orgID := uuid.New()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	current := &model.CalendarEvent{ID: uuid.New(), StartsAt: start, EndsAt: start.Add(time.Hour)}

	repo.EXPECT().Get(gomock.Any(), orgID, current.ID).Return(current, nil).Times(2)

	_, err := svc.UpdateEvent(context.Background(), orgID, current.ID, service.UpdateEventInput{StartsAt: ptr(start.Add(2 * time.Hour))})
	assert.ErrorIs(t, err, domain.ErrInvalidEventTime)

	repo.EXPECT().Update(gomock.Any(), orgID, current.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, patch repository.CalendarPatch) (*model.CalendarEvent, error) {
			require.NotNil(t, patch.StartsAt)
			assert.Nil(t, patch.EndsAt)
			return current, nil
		})
	_, err = svc.UpdateEvent(context.Background(), orgID, current.ID, service.UpdateEventInput{StartsAt: ptr(start.Add(30 * time.Minute))})
	require.NoError(t, err)
}

func TestListEventsRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCalendarRepositoryIface(ctrl)
	svc := service.NewCalendarService(repo)
	orgID := uuid.New()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.ListEvents(context.Background(), orgID, from, from.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.ListEvents(context.Background(), orgID, from, from.AddDate(2, 0, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.EXPECT().List(gomock.Any(), orgID, from, from.AddDate(0, 1, 0)).Return(nil, nil)
	_, err = svc.ListEvents(context.Background(), orgID, from, from.AddDate(0, 1, 0))
	require.NoError(t, err)
}
