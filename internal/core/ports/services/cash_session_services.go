package services

import (
	"context"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/SscSPs/vetpos_backend/internal/dto"
)

// CashSessionReaderSvc defines read operations for cash sessions
type CashSessionReaderSvc interface {
	// GetCurrentSession returns the branch's OPEN session, or nil when there is none.
	GetCurrentSession(ctx context.Context, branchID string) (*domain.CashSession, error)

	GetSession(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// ListSessions returns the branch's session history, newest first.
	ListSessions(ctx context.Context, params dto.ListSessionsParams) ([]domain.CashSession, error)

	// GetSessionSummary builds gross, voided and net totals per payment method.
	GetSessionSummary(ctx context.Context, sessionID string) (*domain.SessionSummary, error)
}

// CashSessionWriterSvc defines the state transitions of a cash session
type CashSessionWriterSvc interface {
	OpenSession(ctx context.Context, req dto.OpenSessionRequest, userID string) (*domain.CashSession, error)
	RecordHandover(ctx context.Context, sessionID string, req dto.HandoverRequest, userID string) error
	CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, userID string) (*domain.CashSession, error)
}

// CashSessionSvcFacade combines all cash-session service interfaces
type CashSessionSvcFacade interface {
	CashSessionReaderSvc
	CashSessionWriterSvc
}
