package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/dto"
)

// cashSessionService drives the drawer session state machine.
type cashSessionService struct {
	BaseService
	sessionRepo portsrepo.CashSessionReader
	saleRepo    portsrepo.SaleReader
}

// NewCashSessionService creates a new CashSessionService.
func NewCashSessionService(base BaseService, sessionRepo portsrepo.CashSessionReader, saleRepo portsrepo.SaleReader) portssvc.CashSessionSvcFacade {
	return &cashSessionService{
		BaseService: base,
		sessionRepo: sessionRepo,
		saleRepo:    saleRepo,
	}
}

var _ portssvc.CashSessionSvcFacade = (*cashSessionService)(nil)

// OpenSession opens a drawer for a branch that has none open.
func (s *cashSessionService) OpenSession(ctx context.Context, req dto.OpenSessionRequest, userID string) (opened *domain.CashSession, err error) {
	ctx, span := startSpan(ctx, "CashSessionService.OpenSession")
	defer func() { endSpan(span, err) }()

	now := time.Now().UTC()
	session, err := domain.OpenSession(uuid.NewString(), req.BranchID, userID, req.OpeningDenominations, now)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lockBranch(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = s.runInTx(ctx, "OpenSession", func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if err := uow.LockBranch(ctx, session.BranchID); err != nil {
			return err
		}
		existing, err := uow.CashSessions().FindOpenSessionForUpdate(ctx, session.BranchID)
		if err == nil {
			return fmt.Errorf("%w: session %s", apperrors.ErrSessionAlreadyOpen, existing.SessionID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check open session: %w", err)
		}
		if err := uow.CashSessions().InsertSession(ctx, *session); err != nil {
			return err
		}
		session.Version = 1
		entry := newActivity(session.BranchID, userID, domain.ActivityCashOpen, session.SessionID,
			fmt.Sprintf("Opened cash session with %s", session.OpeningBalance.String()),
			map[string]any{"openingBalance": session.OpeningBalance.String()}, now)
		return uow.Activity().InsertActivity(ctx, entry)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrSessionAlreadyOpen) {
			s.LogError(ctx, err, "Failed to open cash session", slog.String("branch_id", req.BranchID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Cash session opened",
		slog.String("session_id", session.SessionID),
		slog.String("branch_id", session.BranchID),
		slog.String("opening_balance", session.OpeningBalance.String()))
	return session, nil
}

// mutateOpen loads a session under the branch locks, applies change and
// persists the result.
func (s *cashSessionService) mutateOpen(ctx context.Context, op, sessionID string, change func(*domain.CashSession, portsrepo.UnitOfWork) error) (*domain.CashSession, error) {
	current, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	unlock, err := s.lockBranch(ctx, current.BranchID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var updated *domain.CashSession
	err = s.runInTx(ctx, op, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if err := uow.LockBranch(ctx, current.BranchID); err != nil {
			return err
		}
		session, err := uow.CashSessions().FindSessionByIDForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := change(session, uow); err != nil {
			return err
		}
		if err := uow.CashSessions().UpdateSession(ctx, *session); err != nil {
			return fmt.Errorf("failed to update cash session: %w", err)
		}
		session.Version++
		updated = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RecordHandover annotates an open session with a mid-shift count.
func (s *cashSessionService) RecordHandover(ctx context.Context, sessionID string, req dto.HandoverRequest, userID string) (err error) {
	ctx, span := startSpan(ctx, "CashSessionService.RecordHandover")
	defer func() { endSpan(span, err) }()

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}
	if req.Denominations == nil {
		req.Denominations = domain.Denominations{}
	}
	session, err := s.mutateOpen(ctx, "RecordHandover", sessionID, func(session *domain.CashSession, uow portsrepo.UnitOfWork) error {
		if err := session.RecordHandover(req.TargetUserID, req.Denominations, date); err != nil {
			return err
		}
		entry := newActivity(session.BranchID, userID, domain.ActivityCashHandover, session.SessionID,
			fmt.Sprintf("Handed over %s to %s", session.Handover.Total.String(), req.TargetUserID),
			map[string]any{"handoverTotal": session.Handover.Total.String(), "toUserID": req.TargetUserID}, now)
		return uow.Activity().InsertActivity(ctx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record handover", slog.String("session_id", sessionID))
		return err
	}
	s.LogInfo(ctx, "Cash handover recorded",
		slog.String("session_id", sessionID),
		slog.String("handover_total", session.Handover.Total.String()))
	return nil
}

// CloseSession reconciles and closes an open session. Variance is recorded,
// never rejected.
func (s *cashSessionService) CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, userID string) (closed *domain.CashSession, err error) {
	ctx, span := startSpan(ctx, "CashSessionService.CloseSession")
	defer func() { endSpan(span, err) }()

	now := time.Now().UTC()
	closed, err = s.mutateOpen(ctx, "CloseSession", sessionID, func(session *domain.CashSession, uow portsrepo.UnitOfWork) error {
		if err := session.Close(userID, req.ClosingDenominations, req.Adjustments(), now); err != nil {
			return err
		}
		entry := newActivity(session.BranchID, userID, domain.ActivityCashClose, session.SessionID,
			fmt.Sprintf("Closed cash session: expected %s, counted %s", session.ClosingBalanceExpected.String(), session.ClosingBalanceReal.String()),
			map[string]any{
				"expected": session.ClosingBalanceExpected.String(),
				"real":     session.ClosingBalanceReal.String(),
				"variance": session.Variance.String(),
			}, now)
		return uow.Activity().InsertActivity(ctx, entry)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrSessionClosed) {
			s.LogError(ctx, err, "Failed to close cash session", slog.String("session_id", sessionID))
		}
		return nil, err
	}

	logger := s.GetLogger(ctx).With(slog.String("session_id", sessionID))
	if !closed.Variance.IsZero() {
		logger.Warn("Cash session closed with variance", slog.String("variance", closed.Variance.String()))
	} else {
		logger.Info("Cash session closed")
	}
	return closed, nil
}

// GetCurrentSession returns nil without error when the branch has no open session.
func (s *cashSessionService) GetCurrentSession(ctx context.Context, branchID string) (*domain.CashSession, error) {
	if branchID == "" {
		return nil, fmt.Errorf("%w: branch is required", apperrors.ErrValidation)
	}
	session, err := s.sessionRepo.FindOpenSession(ctx, branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to fetch current session", slog.String("branch_id", branchID))
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a session by id.
func (s *cashSessionService) GetSession(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	return s.sessionRepo.FindSessionByID(ctx, sessionID)
}

// ListSessions returns a branch's history, newest first.
func (s *cashSessionService) ListSessions(ctx context.Context, params dto.ListSessionsParams) ([]domain.CashSession, error) {
	if !params.From.IsZero() && !params.To.IsZero() && params.To.Before(params.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", apperrors.ErrValidation)
	}
	filter := portsrepo.SessionFilter{
		BranchID: params.BranchID,
		From:     params.From,
		Limit:    clampLimit(params.Limit, 30, 200),
	}
	if !params.To.IsZero() {
		// inclusive of the whole 'to' day
		filter.To = params.To.Add(24 * time.Hour)
	}
	sessions, err := s.sessionRepo.ListSessions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sessions", slog.String("branch_id", params.BranchID))
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []domain.CashSession{}
	}
	return sessions, nil
}

// GetSessionSummary reports gross, voided and net per method.
func (s *cashSessionService) GetSessionSummary(ctx context.Context, sessionID string) (*domain.SessionSummary, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	totals, err := s.saleRepo.SessionPaymentTotals(ctx, sessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate session sales", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to aggregate session sales: %w", err)
	}
	summary := domain.Summarize(*session, totals)
	return &summary, nil
}
