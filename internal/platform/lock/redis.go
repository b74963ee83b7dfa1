package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/middleware"
)

const (
	keyPrefix     = "vetpos:branch-lock:"
	retryInterval = 50 * time.Millisecond
)

// Redis shares branch locks between processes.
type Redis struct {
	client *redislock.Client
	ttl    time.Duration
}

var _ portssvc.BranchLocker = (*Redis)(nil)

// NewRedis returns a locker whose locks expire after ttl if never released.
func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: redislock.New(rdb), ttl: ttl}
}

// Key returns the redis key guarding branchID.
func Key(branchID string) string {
	return keyPrefix + branchID
}

// Lock retries until the lock is obtained, ttl elapses or ctx ends.
func (r *Redis) Lock(ctx context.Context, branchID string) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, r.ttl)
	defer cancel()

	l, err := r.client.Obtain(waitCtx, Key(branchID), r.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(retryInterval),
	})
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: branch %s is busy", apperrors.ErrConcurrencyConflict, branchID)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to obtain branch lock", err)
	}

	return func() {
		// ctx may already be cancelled
		if err := l.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to release branch lock",
				slog.String("branch_id", branchID),
				slog.String("error", err.Error()))
		}
	}, nil
}
