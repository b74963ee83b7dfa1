package lock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/platform/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSerializesSameBranch(t *testing.T) {
	l := lock.NewLocal(time.Second)
	ctx := context.Background()

	var mu sync.Mutex
	inside, maxInside := 0, 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "b1")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxInside)
}

func TestLocalIndependentBranches(t *testing.T) {
	l := lock.NewLocal(50 * time.Millisecond)
	ctx := context.Background()

	unlockA, err := l.Lock(ctx, "a")
	require.NoError(t, err)
	defer unlockA()

	unlockB, err := l.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()
}

func TestLocalTimesOutAsConflict(t *testing.T) {
	l := lock.NewLocal(20 * time.Millisecond)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "b1")
	require.NoError(t, err)

	_, err = l.Lock(ctx, "b1")
	assert.ErrorIs(t, err, apperrors.ErrConcurrencyConflict)

	unlock()
	unlock() // second call is a no-op

	again, err := l.Lock(ctx, "b1")
	require.NoError(t, err)
	again()
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "vetpos:branch-lock:b1", lock.Key("b1"))
}
