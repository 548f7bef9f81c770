// Package lock provides named mutual exclusion, across processes when redis
// is available.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned by TryLock when another holder owns the key.
var ErrNotAcquired = errors.New("lock held elsewhere")

// ReleaseFunc releases a held lock. It is safe to call more than once.
type ReleaseFunc func()

type Locker interface {
	// TryLock takes key without waiting. It returns ErrNotAcquired when the
	// key is held.
	TryLock(ctx context.Context, key string) (ReleaseFunc, error)
}

type memoryLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMemoryLocker returns a Locker scoped to this process.
func NewMemoryLocker() Locker {
	return &memoryLocker{held: map[string]struct{}{}}
}

func (l *memoryLocker) TryLock(_ context.Context, key string) (ReleaseFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return nil, ErrNotAcquired
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}

type redisLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

// NewRedisLocker returns a Locker shared by every process using client.
// A lock that is never released expires after expiry.
func NewRedisLocker(client redis.UniversalClient, expiry time.Duration) Locker {
	return &redisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		expiry: expiry,
	}
}

func (l *redisLocker) TryLock(ctx context.Context, key string) (ReleaseFunc, error) {
	mutex := l.rs.NewMutex(key, redsync.WithTries(1), redsync.WithExpiry(l.expiry))
	if err := mutex.LockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) {
			return nil, ErrNotAcquired
		}
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// an unreleased lock expires on its own
			_, _ = mutex.Unlock()
		})
	}, nil
}
