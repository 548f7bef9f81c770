package repository

import (
	"context"
	"testing"

	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEmailUniquePerOrganization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.clients.Create(ctx, &model.Client{OrganizationID: f.orgID, Name: "Ann", Email: "ann@acme.io"}))

	err := f.clients.Create(ctx, &model.Client{OrganizationID: f.orgID, Name: "Ann B", Email: " ANN@acme.io "})
	assert.ErrorIs(t, err, domain.ErrClientEmailExists)
	assert.ErrorIs(t, err, domain.ErrConflict)

	other := &model.Client{OrganizationID: uuid.New(), Name: "Ann", Email: "ann@acme.io"}
	assert.NoError(t, f.clients.Create(ctx, other))
}

func TestClientUpdateConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := &model.Client{OrganizationID: f.orgID, Name: "A", Email: "a@x.io"}
	b := &model.Client{OrganizationID: f.orgID, Name: "B", Email: "b@x.io"}
	require.NoError(t, f.clients.Create(ctx, a))
	require.NoError(t, f.clients.Create(ctx, b))

	_, err := f.clients.Update(ctx, f.orgID, b.ID, ClientPatch{Email: ptr("A@x.io")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.clients.Update(ctx, f.orgID, b.ID, ClientPatch{Phone: ptr("555-0100"), ValueUSD: ptr(42.5)})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", got.Phone)
	assert.Equal(t, 42.5, got.ValueUSD)
}

func TestClientListSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, c := range []model.Client{
		{Name: "Ann", Email: "ann@acme.io", Company: "Acme"},
		{Name: "Bob", Email: "bob@globex.io", Company: "Globex"},
		{Name: "Cid", Email: "cid@acme.io", Company: "Acme"},
	} {
		c.OrganizationID = f.orgID
		require.NoError(t, f.clients.Create(ctx, &c))
	}

	clients, total, err := f.clients.List(ctx, f.orgID, ClientQuery{Search: "ACME", Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, clients, 1)
	assert.Equal(t, "Ann", clients[0].Name)

	clients, total, err = f.clients.List(ctx, f.orgID, ClientQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, clients, 3)
}

func TestClientDeleteUnlinksCards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.board(t, "Lead")
	client := &model.Client{OrganizationID: f.orgID, Name: "Ann", Email: "ann@acme.io"}
	require.NoError(t, f.clients.Create(ctx, client))

	c := f.card(t, p.Stages[0], "deal")
	_, err := f.cards.Update(ctx, f.orgID, c.ID, CardPatch{ClientID: &client.ID})
	require.NoError(t, err)

	require.NoError(t, f.clients.Delete(ctx, f.orgID, client.ID))

	got, err := f.cards.Get(ctx, f.orgID, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ClientID)

	assert.ErrorIs(t, f.clients.Delete(ctx, f.orgID, client.ID), domain.ErrClientNotFound)
}

func TestMaterializeFromCard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.board(t, "Lead", "Closed")

	c := &model.Card{
		OrganizationID: f.orgID,
		StageID:        p.Stages[0].ID,
		Title:          "Acme Deal",
		Value:          5000,
		ClientName:     ptr("Ann Smith"),
		ClientEmail:    ptr("Ann@Acme.io"),
		ClientCompany:  ptr("Acme"),
	}
	require.NoError(t, f.cards.Create(ctx, c, nil))

	client, created, err := f.clients.MaterializeFromCard(ctx, f.orgID, c.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ann@acme.io", client.Email)
	assert.Equal(t, "Ann Smith", client.Name)
	assert.Equal(t, "Acme", client.Company)
	assert.Equal(t, 5000.0, client.ValueUSD)

	got, err := f.cards.Get(ctx, f.orgID, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ClientID)
	assert.Equal(t, client.ID, *got.ClientID)

	// a second card with the same email links to the existing client
	c2 := &model.Card{OrganizationID: f.orgID, StageID: p.Stages[0].ID, Title: "Upsell", ClientEmail: ptr("ann@acme.io")}
	require.NoError(t, f.cards.Create(ctx, c2, nil))

	linked, created, err := f.clients.MaterializeFromCard(ctx, f.orgID, c2.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, client.ID, linked.ID)
}

func TestMaterializeFromCardNeedsEmail(t *testing.T) {
	f := newFixture(t)
	p := f.board(t, "Lead")
	c := &model.Card{OrganizationID: f.orgID, StageID: p.Stages[0].ID, Title: "x", ClientName: ptr("Nameless")}
	require.NoError(t, f.cards.Create(context.Background(), c, nil))

	_, _, err := f.clients.MaterializeFromCard(context.Background(), f.orgID, c.ID)
	assert.ErrorIs(t, err, domain.ErrClientInfoMissing)
}
