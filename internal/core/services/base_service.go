package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/SscSPs/vetpos_backend/internal/core/services")

// RetryPolicy bounds the transparent retries on ErrConcurrencyConflict.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// DefaultRetryPolicy is used when no policy is configured.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, Backoff: 25 * time.Millisecond}

// BaseService provides common functionality for all services
type BaseService struct {
	TxManager portsrepo.TransactionManager
	Locker    portssvc.BranchLocker
	Retry     RetryPolicy
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// lockBranch takes the process-level branch lock when a locker is configured.
func (s *BaseService) lockBranch(ctx context.Context, branchID string) (func(), error) {
	if s.Locker == nil {
		return func() {}, nil
	}
	unlock, err := s.Locker.Lock(ctx, branchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to obtain branch lock", slog.String("branch_id", branchID))
		return nil, err
	}
	return unlock, nil
}

// runInTx runs fn in a transaction, retrying with linear backoff while it
// fails with ErrConcurrencyConflict.
func (s *BaseService) runInTx(ctx context.Context, op string, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) error {
	attempts := s.Retry.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = s.TxManager.WithinTx(ctx, fn)
		if err == nil || !apperrors.IsRetryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}
		s.LogDebug(ctx, "Retrying after concurrency conflict",
			slog.String("operation", op),
			slog.Int("attempt", attempt))
		if err := s.backoff(ctx, attempt); err != nil {
			return err
		}
	}
	s.LogError(ctx, err, "Giving up after concurrency conflicts", slog.String("operation", op), slog.Int("attempts", attempts))
	return err
}

// backoff waits attempt times the configured pause, or until ctx is done.
func (s *BaseService) backoff(ctx context.Context, attempt int) error {
	timer := time.NewTimer(s.Retry.Backoff * time.Duration(attempt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func newActivity(branchID, userID string, action domain.ActivityAction, entityID, description string, metadata map[string]any, at time.Time) domain.ActivityLog {
	return domain.ActivityLog{
		ActivityID:  uuid.NewString(),
		BranchID:    branchID,
		UserID:      userID,
		Action:      action,
		EntityID:    entityID,
		Description: description,
		Metadata:    metadata,
		CreatedAt:   at,
	}
}

func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
