package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/dangerclosesec/crmboard/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheService(t *testing.T) {
	ctx := context.Background()
	cache := service.NewCacheService(service.CacheConfig{Size: 8, TTL: time.Minute})
	defer cache.Close()

	var got model.Stage
	assert.ErrorIs(t, cache.Get(ctx, "stage", &got), domain.ErrCacheMiss)
	assert.ErrorIs(t, cache.Set(ctx, "", 1), domain.ErrInvalidInput)

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return &model.Stage{Name: "Lead"}, nil
	}
	require.NoError(t, cache.GetOrSet(ctx, "stage", &got, fetch))
	require.NoError(t, cache.GetOrSet(ctx, "stage", &got, fetch))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Lead", got.Name)

	require.NoError(t, cache.Delete(ctx, "stage"))
	boom := errors.New("boom")
	err := cache.GetOrSet(ctx, "stage", &got, func() (interface{}, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	// values of another shape are converted through JSON
	require.NoError(t, cache.Set(ctx, "raw", map[string]any{"name": "Won", "kind": "closed"}))
	require.NoError(t, cache.Get(ctx, "raw", &got))
	assert.Equal(t, model.StageClosed, got.Kind)

	// hits are copies; editing one leaves the cached board intact
	board := &model.Pipeline{Name: "Sales", Stages: []model.Stage{{Name: "Lead"}, {Name: "Won"}}}
	require.NoError(t, cache.Set(ctx, "board", board))

	var first model.Pipeline
	require.NoError(t, cache.Get(ctx, "board", &first))
	first.Stages[0].Name = "edited"
	first.Stages = first.Stages[:1]

	var second model.Pipeline
	require.NoError(t, cache.Get(ctx, "board", &second))
	require.Len(t, second.Stages, 2)
	assert.Equal(t, "Lead", second.Stages[0].Name)
}
