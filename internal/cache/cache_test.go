package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(2, time.Minute)

	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	c.Set(ctx, "c", 3)

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok, "oldest entry is evicted")

	v, ok := c.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	c.Delete(ctx, "c")
	assert.Equal(t, 1, c.Len())
}

func TestInMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(10, 20*time.Millisecond)
	c.Set(ctx, "k", "v")

	assert.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestDeletePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(10, time.Minute)
	c.Set(ctx, "board:org1:p1", 1)
	c.Set(ctx, "board:org1:p2", 2)
	c.Set(ctx, "board:org2:p3", 3)

	assert.Equal(t, 2, c.DeletePrefix(ctx, "board:org1:"))
	assert.Equal(t, 1, c.Len())
}
