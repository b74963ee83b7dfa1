package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vetpos_backend/internal/models"
	"github.com/SscSPs/vetpos_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const sessionColumns = `session_id, branch_id, status, opened_at, opened_by, opening_balance, opening_denominations,
	sales_cash, sales_debit, sales_credit, sales_transfer, sales_debt,
	closing_balance_expected, closing_balance_real, closing_denominations, variance, total_declared,
	adjustments, closed_at, closed_by, handover, version`

// salesColumnByMethod whitelists the accumulator column for each payment method.
var salesColumnByMethod = map[domain.PaymentMethod]string{
	domain.PaymentCash:     "sales_cash",
	domain.PaymentDebit:    "sales_debit",
	domain.PaymentCredit:   "sales_credit",
	domain.PaymentTransfer: "sales_transfer",
	domain.PaymentDebt:     "sales_debt",
}

type PgxCashSessionRepository struct {
	BaseRepository
}

func newPgxCashSessionRepository(pool *pgxpool.Pool) *PgxCashSessionRepository {
	return &PgxCashSessionRepository{BaseRepository: newBaseRepository(pool)}
}

func (r *PgxCashSessionRepository) withTx(tx pgx.Tx) *PgxCashSessionRepository {
	return &PgxCashSessionRepository{BaseRepository: r.bound(tx)}
}

var (
	_ portsrepo.CashSessionReader       = (*PgxCashSessionRepository)(nil)
	_ portsrepo.CashSessionTxRepository = (*PgxCashSessionRepository)(nil)
)

// FindOpenSession returns the branch's OPEN session or ErrNotFound.
func (r *PgxCashSessionRepository) FindOpenSession(ctx context.Context, branchID string) (*domain.CashSession, error) {
	return r.findOne(ctx, "branch_id = $1 AND status = 'OPEN'", "", branchID, "open session of branch "+branchID)
}

// FindOpenSessionForUpdate locks and returns the branch's OPEN session or ErrNotFound.
func (r *PgxCashSessionRepository) FindOpenSessionForUpdate(ctx context.Context, branchID string) (*domain.CashSession, error) {
	return r.findOne(ctx, "branch_id = $1 AND status = 'OPEN'", " FOR UPDATE", branchID, "open session of branch "+branchID)
}

// FindSessionByID retrieves a session.
func (r *PgxCashSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	return r.findOne(ctx, "session_id = $1", "", sessionID, "cash session "+sessionID)
}

// FindSessionByIDForUpdate locks and returns a session.
func (r *PgxCashSessionRepository) FindSessionByIDForUpdate(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	return r.findOne(ctx, "session_id = $1", " FOR UPDATE", sessionID, "cash session "+sessionID)
}

func (r *PgxCashSessionRepository) findOne(ctx context.Context, where, lockClause, arg, what string) (*domain.CashSession, error) {
	query := "SELECT " + sessionColumns + " FROM cash_sessions WHERE " + where + lockClause + ";"
	m, err := scanSession(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapPgError(err, what)
	}
	session, err := mapping.ToDomainCashSession(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode "+what, err)
	}
	return &session, nil
}

// InsertSession persists a new OPEN session. The partial unique index turns
// a second OPEN session for the branch into ErrSessionAlreadyOpen.
func (r *PgxCashSessionRepository) InsertSession(ctx context.Context, session domain.CashSession) error {
	m, err := mapping.ToModelCashSession(session)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode cash session", err)
	}
	query := `
		INSERT INTO cash_sessions (session_id, branch_id, status, opened_at, opened_by,
			opening_balance, opening_denominations, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1);
	`
	_, err = r.db.Exec(ctx, query,
		m.SessionID,
		m.BranchID,
		m.Status,
		m.OpenedAt,
		m.OpenedBy,
		m.OpeningBalance,
		m.OpeningDenominations,
	)
	if err != nil {
		return mapPgError(err, "failed to insert cash session for branch "+session.BranchID)
	}
	return nil
}

// AddSales increments one accumulator of an OPEN session.
func (r *PgxCashSessionRepository) AddSales(ctx context.Context, sessionID string, method domain.PaymentMethod, amount decimal.Decimal) error {
	column, ok := salesColumnByMethod[method]
	if !ok {
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, method)
	}
	query := "UPDATE cash_sessions SET " + column + " = " + column + " + $2, version = version + 1 " +
		"WHERE session_id = $1 AND status = 'OPEN';"
	tag, err := r.db.Exec(ctx, query, sessionID, amount)
	if err != nil {
		return mapPgError(err, "failed to accumulate sale on session "+sessionID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: session %s", apperrors.ErrSessionClosed, sessionID)
	}
	return nil
}

// UpdateSession persists handover and close fields when the stored version
// still matches session.Version.
func (r *PgxCashSessionRepository) UpdateSession(ctx context.Context, session domain.CashSession) error {
	m, err := mapping.ToModelCashSession(session)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode cash session", err)
	}
	query := `
		UPDATE cash_sessions
		SET status = $2,
		    closing_balance_expected = $3,
		    closing_balance_real = $4,
		    closing_denominations = $5,
		    variance = $6,
		    total_declared = $7,
		    adjustments = $8,
		    closed_at = $9,
		    closed_by = $10,
		    handover = $11,
		    version = version + 1
		WHERE session_id = $1 AND version = $12;
	`
	tag, err := r.db.Exec(ctx, query,
		m.SessionID,
		m.Status,
		m.ClosingBalanceExpected,
		m.ClosingBalanceReal,
		m.ClosingDenominations,
		m.Variance,
		m.TotalDeclared,
		m.Adjustments,
		m.ClosedAt,
		m.ClosedBy,
		m.Handover,
		m.Version,
	)
	if err != nil {
		return mapPgError(err, "failed to update cash session "+session.SessionID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cash session %s changed concurrently", apperrors.ErrConcurrencyConflict, session.SessionID)
	}
	return nil
}

// ListSessions returns sessions newest first.
func (r *PgxCashSessionRepository) ListSessions(ctx context.Context, filter portsrepo.SessionFilter) ([]domain.CashSession, error) {
	query := "SELECT " + sessionColumns + " FROM cash_sessions WHERE branch_id = $1"
	args := []any{filter.BranchID}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += " AND opened_at >= $" + strconv.Itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += " AND opened_at < $" + strconv.Itoa(len(args))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 30
	}
	args = append(args, limit)
	query += " ORDER BY opened_at DESC, session_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to query cash sessions")
	}
	defer rows.Close()

	sessions := make([]domain.CashSession, 0)
	for rows.Next() {
		m, err := scanSession(rows)
		if err != nil {
			return nil, mapPgError(err, "failed to scan cash session")
		}
		s, err := mapping.ToDomainCashSession(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode cash session", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating cash sessions")
	}
	return sessions, nil
}

func scanSession(row pgx.Row) (models.CashSession, error) {
	var m models.CashSession
	err := row.Scan(
		&m.SessionID,
		&m.BranchID,
		&m.Status,
		&m.OpenedAt,
		&m.OpenedBy,
		&m.OpeningBalance,
		&m.OpeningDenominations,
		&m.SalesCash,
		&m.SalesDebit,
		&m.SalesCredit,
		&m.SalesTransfer,
		&m.SalesDebt,
		&m.ClosingBalanceExpected,
		&m.ClosingBalanceReal,
		&m.ClosingDenominations,
		&m.Variance,
		&m.TotalDeclared,
		&m.Adjustments,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.Handover,
		&m.Version,
	)
	return m, err
}
