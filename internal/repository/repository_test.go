package repository

import (
	"context"
	"testing"

	"github.com/dangerclosesec/crmboard/internal/database"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	orgID     uuid.UUID
	pipelines *PipelineRepository
	stages    *StageRepository
	cards     *CardRepository
	clients   *ClientRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := database.OpenTest(t)
	return &fixture{
		db:        db,
		orgID:     uuid.New(),
		pipelines: NewPipelineRepository(db),
		stages:    NewStageRepository(db),
		cards:     NewCardRepository(db),
		clients:   NewClientRepository(db),
	}
}

// board creates a pipeline with the named stages and returns it with stages
// in position order.
func (f *fixture) board(t *testing.T, names ...string) *model.Pipeline {
	t.Helper()
	p := &model.Pipeline{OrganizationID: f.orgID, Name: "Sales"}
	for _, n := range names {
		p.Stages = append(p.Stages, model.Stage{Name: n})
	}
	require.NoError(t, f.pipelines.Create(context.Background(), p))

	got, err := f.pipelines.Get(context.Background(), f.orgID, p.ID, false)
	require.NoError(t, err)
	return got
}

func (f *fixture) card(t *testing.T, stage model.Stage, title string) *model.Card {
	t.Helper()
	c := &model.Card{
		OrganizationID: f.orgID,
		PipelineID:     stage.PipelineID,
		StageID:        stage.ID,
		Title:          title,
	}
	require.NoError(t, f.cards.Create(context.Background(), c, nil))
	return c
}

// stageCards returns the titles and positions of a stage's cards in display order.
func (f *fixture) stageCards(t *testing.T, stageID uuid.UUID) ([]string, []int) {
	t.Helper()
	cards, err := f.cards.List(context.Background(), f.orgID, CardFilter{StageID: stageID})
	require.NoError(t, err)

	titles := make([]string, len(cards))
	positions := make([]int, len(cards))
	for i, c := range cards {
		titles[i] = c.Title
		positions[i] = c.Position
	}
	return titles, positions
}

func dense(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
