// Package lock provides BranchLocker implementations.
package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
)

type slot struct {
	ch   chan struct{}
	refs int
}

// Local is an in-process keyed mutex.
type Local struct {
	wait  time.Duration
	mu    sync.Mutex
	slots map[string]*slot
}

var _ portssvc.BranchLocker = (*Local)(nil)

// NewLocal returns a locker that waits at most wait for a branch. A zero wait
// is bounded by the caller's context only.
func NewLocal(wait time.Duration) *Local {
	return &Local{wait: wait, slots: make(map[string]*slot)}
}

func (l *Local) acquire(branchID string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[branchID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[branchID] = s
	}
	s.refs++
	return s
}

func (l *Local) release(branchID string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, branchID)
	}
}

// Lock blocks until branchID is free.
func (l *Local) Lock(ctx context.Context, branchID string) (func(), error) {
	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}
	s := l.acquire(branchID)
	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(branchID, s)
		return nil, fmt.Errorf("%w: branch %s is busy: %v", apperrors.ErrConcurrencyConflict, branchID, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.release(branchID, s)
		})
	}, nil
}
