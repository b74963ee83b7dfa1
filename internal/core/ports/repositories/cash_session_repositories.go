package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SessionFilter narrows session history queries. Zero times are unbounded.
type SessionFilter struct {
	BranchID string
	From     time.Time
	To       time.Time
	Limit    int
}

// CashSessionReader defines read operations for cash session data
type CashSessionReader interface {
	// FindOpenSession returns the branch's OPEN session or ErrNotFound.
	FindOpenSession(ctx context.Context, branchID string) (*domain.CashSession, error)

	// FindSessionByID retrieves a session.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// ListSessions returns sessions newest first.
	ListSessions(ctx context.Context, filter SessionFilter) ([]domain.CashSession, error)
}

// CashSessionTxRepository defines cash session writes performed inside a unit of work.
type CashSessionTxRepository interface {
	// FindOpenSessionForUpdate locks and returns the branch's OPEN session or ErrNotFound.
	FindOpenSessionForUpdate(ctx context.Context, branchID string) (*domain.CashSession, error)

	// FindSessionByIDForUpdate locks and returns a session.
	FindSessionByIDForUpdate(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// InsertSession persists a new OPEN session at version 1. A second OPEN
	// session for the branch fails with ErrSessionAlreadyOpen.
	InsertSession(ctx context.Context, session domain.CashSession) error

	// AddSales increments one accumulator of an OPEN session.
	// A session that is no longer OPEN fails with ErrSessionClosed.
	AddSales(ctx context.Context, sessionID string, method domain.PaymentMethod, amount decimal.Decimal) error

	// UpdateSession persists handover and close fields, comparing the version.
	UpdateSession(ctx context.Context, session domain.CashSession) error
}
