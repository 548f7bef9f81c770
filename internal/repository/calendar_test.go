package repository

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarListRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewCalendarRepository(f.db)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	events := []*model.CalendarEvent{
		{OrganizationID: f.orgID, Title: "standup", StartsAt: day.Add(9 * time.Hour), EndsAt: day.Add(10 * time.Hour)},
		{OrganizationID: f.orgID, Title: "demo", StartsAt: day.Add(26 * time.Hour), EndsAt: day.Add(27 * time.Hour)},
		{OrganizationID: f.orgID, Title: "offsite", StartsAt: day.Add(-24 * time.Hour), EndsAt: day.Add(48 * time.Hour), AllDay: true},
	}
	require.NoError(t, repo.CreateMany(ctx, events))

	got, err := repo.List(ctx, f.orgID, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	titles := []string{}
	for _, e := range got {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"offsite", "standup"}, titles)

	all, err := repo.List(ctx, f.orgID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCalendarUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewCalendarRepository(f.db)
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	e := &model.CalendarEvent{OrganizationID: f.orgID, Title: "call", StartsAt: start, EndsAt: start.Add(time.Hour)}
	require.NoError(t, repo.CreateMany(ctx, []*model.CalendarEvent{e}))

	got, err := repo.Update(ctx, f.orgID, e.ID, CalendarPatch{Title: ptr("intro call"), Location: ptr("zoom")})
	require.NoError(t, err)
	assert.Equal(t, "intro call", got.Title)
	assert.Equal(t, "zoom", got.Location)

	require.NoError(t, repo.Delete(ctx, f.orgID, e.ID))
	_, err = repo.Get(ctx, f.orgID, e.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestCalendarDueReminders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewCalendarRepository(f.db)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	due := &model.CalendarEvent{
		OrganizationID: f.orgID, Title: "due",
		StartsAt: now.Add(10 * time.Minute), EndsAt: now.Add(time.Hour),
		ReminderMinutes: ptr(15), ReminderEmail: ptr("rep@acme.io"),
	}
	later := &model.CalendarEvent{
		OrganizationID: f.orgID, Title: "later",
		StartsAt: now.Add(2 * time.Hour), EndsAt: now.Add(3 * time.Hour),
		ReminderMinutes: ptr(15),
	}
	none := &model.CalendarEvent{
		OrganizationID: f.orgID, Title: "none",
		StartsAt: now.Add(5 * time.Minute), EndsAt: now.Add(time.Hour),
	}
	require.NoError(t, repo.CreateMany(ctx, []*model.CalendarEvent{due, later, none}))

	got, err := repo.DueReminders(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, due.ID, got[0].ID)

	claimed, err := repo.MarkReminderSent(ctx, due.ID, now)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.MarkReminderSent(ctx, due.ID, now)
	require.NoError(t, err)
	assert.False(t, claimed)

	got, err = repo.DueReminders(ctx, now, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCalendarDueRemindersLongLead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewCalendarRepository(f.db)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// reminder came due four days ago, event still ten days out
	event := &model.CalendarEvent{
		OrganizationID: f.orgID, Title: "renewal",
		StartsAt: now.Add(10 * 24 * time.Hour), EndsAt: now.Add(10*24*time.Hour + time.Hour),
		ReminderMinutes: ptr(14 * 24 * 60),
	}
	longest := &model.CalendarEvent{
		OrganizationID: f.orgID, Title: "kickoff",
		StartsAt: now.Add(27 * 24 * time.Hour), EndsAt: now.Add(27*24*time.Hour + time.Hour),
		ReminderMinutes: ptr(model.MaxReminderMinutes),
	}
	require.NoError(t, repo.CreateMany(ctx, []*model.CalendarEvent{event, longest}))

	got, err := repo.DueReminders(ctx, now, 10)
	require.NoError(t, err)
	titles := []string{}
	for _, e := range got {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"renewal", "kickoff"}, titles)
}

func TestCalendarRejectsForeignReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewCalendarRepository(f.db)
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	foreign := &model.Client{OrganizationID: uuid.New(), Name: "Secret Corp", Email: "ceo@secret.example"}
	require.NoError(t, f.clients.Create(ctx, foreign))

	other := *f
	other.orgID = foreign.OrganizationID
	otherCard := other.card(t, other.board(t, "Lead").Stages[0], "Their Deal")

	err := repo.CreateMany(ctx, []*model.CalendarEvent{{
		OrganizationID: f.orgID, Title: "call",
		StartsAt: start, EndsAt: start.Add(time.Hour),
		ClientID: &foreign.ID,
	}})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	e := &model.CalendarEvent{OrganizationID: f.orgID, Title: "call", StartsAt: start, EndsAt: start.Add(time.Hour)}
	require.NoError(t, repo.CreateMany(ctx, []*model.CalendarEvent{e}))

	_, err = repo.Update(ctx, f.orgID, e.ID, CalendarPatch{CardID: &otherCard.ID})
	assert.ErrorIs(t, err, domain.ErrCardNotFound)

	got, err := repo.Get(ctx, f.orgID, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CardID)
}
