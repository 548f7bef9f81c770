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

func TestPipelineCreateKeepsStageOrder(t *testing.T) {
	f := newFixture(t)
	names := []string{"Lead", "Qualified", "Proposal", "Negotiation", "Closed"}
	f.board(t, names...)

	pipelines, err := f.pipelines.List(context.Background(), f.orgID)
	require.NoError(t, err)
	require.Len(t, pipelines, 1)

	got := pipelines[0].Stages
	require.Len(t, got, len(names))
	for i, s := range got {
		assert.Equal(t, names[i], s.Name)
		assert.Equal(t, i, s.Position)
	}
	assert.Equal(t, model.StageClosed, got[4].Kind)
	assert.Equal(t, model.StageOpen, got[0].Kind)
}

func TestPipelineListIsTenantScoped(t *testing.T) {
	f := newFixture(t)
	f.board(t, "Lead")

	pipelines, err := f.pipelines.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, pipelines)
}

func TestPipelineSingleDefault(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := &model.Pipeline{OrganizationID: f.orgID, Name: "First", IsDefault: true}
	require.NoError(t, f.pipelines.Create(ctx, first))
	second := &model.Pipeline{OrganizationID: f.orgID, Name: "Second", IsDefault: true}
	require.NoError(t, f.pipelines.Create(ctx, second))

	got, err := f.pipelines.Get(ctx, f.orgID, first.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)

	_, err = f.pipelines.Update(ctx, f.orgID, first.ID, PipelinePatch{IsDefault: ptr(true)})
	require.NoError(t, err)

	got, err = f.pipelines.Get(ctx, f.orgID, second.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
}

func TestPipelineDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.board(t, "Lead", "Won")
	f.card(t, p.Stages[0], "Acme")

	require.NoError(t, f.pipelines.Delete(ctx, f.orgID, p.ID))

	var stages, cards int64
	require.NoError(t, f.db.Model(&model.Stage{}).Where("pipeline_id = ?", p.ID).Count(&stages).Error)
	require.NoError(t, f.db.Model(&model.Card{}).Where("pipeline_id = ?", p.ID).Count(&cards).Error)
	assert.Zero(t, stages)
	assert.Zero(t, cards)

	err := f.pipelines.Delete(ctx, f.orgID, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPipelineGetWithCards(t *testing.T) {
	f := newFixture(t)
	p := f.board(t, "Lead", "Won")
	f.card(t, p.Stages[0], "A")
	f.card(t, p.Stages[0], "B")

	got, err := f.pipelines.Get(context.Background(), f.orgID, p.ID, true)
	require.NoError(t, err)
	require.Len(t, got.Stages[0].Cards, 2)
	assert.Equal(t, "A", got.Stages[0].Cards[0].Title)
	assert.Equal(t, "B", got.Stages[0].Cards[1].Title)
	assert.Empty(t, got.Stages[1].Cards)
}
