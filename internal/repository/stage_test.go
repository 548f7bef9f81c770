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

func TestStageCreateBatchDistinctPositions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.board(t, "Lead")

	batch := []*model.Stage{{Name: "Demo"}, {Name: "Proposal"}, {Name: "closed"}}
	require.NoError(t, f.stages.CreateBatch(ctx, f.orgID, p.ID, batch))

	stages, err := f.stages.List(ctx, f.orgID, p.ID)
	require.NoError(t, err)
	require.Len(t, stages, 4)

	seen := map[int]bool{}
	for i, s := range stages {
		assert.Equal(t, i, s.Position)
		assert.False(t, seen[s.Position], "duplicate position %d", s.Position)
		seen[s.Position] = true
	}
	assert.Equal(t, []string{"Lead", "Demo", "Proposal", "closed"},
		[]string{stages[0].Name, stages[1].Name, stages[2].Name, stages[3].Name})
	assert.Equal(t, model.StageClosed, stages[3].Kind)
}

func TestStageCreateBatchUnknownPipeline(t *testing.T) {
	f := newFixture(t)

	err := f.stages.CreateBatch(context.Background(), f.orgID, uuid.New(), []*model.Stage{{Name: "x"}})
	assert.ErrorIs(t, err, domain.ErrPipelineNotFound)

	err = f.stages.CreateBatch(context.Background(), f.orgID, uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStageReorder(t *testing.T) {
	f := newFixture(t)
	p := f.board(t, "A", "B", "C", "D")

	stages, err := f.stages.Reorder(context.Background(), f.orgID, p.Stages[3].ID, 1)
	require.NoError(t, err)

	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name
		assert.Equal(t, i, s.Position)
	}
	assert.Equal(t, []string{"A", "D", "B", "C"}, names)
}

func TestStageUpdateKind(t *testing.T) {
	f := newFixture(t)
	p := f.board(t, "Won")

	kind := model.StageClosed
	got, err := f.stages.Update(context.Background(), f.orgID, p.Stages[0].ID, StagePatch{Kind: &kind, Color: ptr("#0a0")})
	require.NoError(t, err)
	assert.True(t, got.IsClosed())
	assert.Equal(t, "#0a0", got.Color)

	_, err = f.stages.Update(context.Background(), uuid.New(), p.Stages[0].ID, StagePatch{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrStageNotFound)
}

func TestStageDeleteLeavesNoCards(t *testing.T) {
	tests := []struct {
		name      string
		withCards bool
	}{
		{name: "foreign key cascade", withCards: false},
		{name: "explicit delete", withCards: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			p := f.board(t, "A", "B", "C")
			for _, title := range []string{"one", "two", "three"} {
				f.card(t, p.Stages[1], title)
			}

			if tt.withCards {
				_, removed, err := f.stages.DeleteWithCards(ctx, f.orgID, p.Stages[1].ID)
				require.NoError(t, err)
				assert.EqualValues(t, 3, removed)
			} else {
				_, err := f.stages.Delete(ctx, f.orgID, p.Stages[1].ID)
				require.NoError(t, err)
			}

			var count int64
			require.NoError(t, f.db.Model(&model.Card{}).Where("stage_id = ?", p.Stages[1].ID).Count(&count).Error)
			assert.Zero(t, count)

			stages, err := f.stages.List(ctx, f.orgID, p.ID)
			require.NoError(t, err)
			require.Len(t, stages, 2)
			assert.Equal(t, "A", stages[0].Name)
			assert.Equal(t, 0, stages[0].Position)
			assert.Equal(t, "C", stages[1].Name)
			assert.Equal(t, 1, stages[1].Position)
		})
	}
}
