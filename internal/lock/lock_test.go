package lock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()

	release, err := l.TryLock(ctx, "reminders")
	require.NoError(t, err)

	_, err = l.TryLock(ctx, "reminders")
	assert.ErrorIs(t, err, ErrNotAcquired)

	other, err := l.TryLock(ctx, "other")
	require.NoError(t, err)
	other()

	release()
	release()

	again, err := l.TryLock(ctx, "reminders")
	require.NoError(t, err)
	again()
}
