package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type sessionReader struct{ s *Store }

var _ portsrepo.CashSessionReader = sessionReader{}

func (r sessionReader) FindOpenSession(_ context.Context, branchID string) (*domain.CashSession, error) {
	var session *domain.CashSession
	r.s.read(func(st *state) { session = findOpen(st, branchID) })
	if session == nil {
		return nil, fmt.Errorf("%w: open session of branch %s", apperrors.ErrNotFound, branchID)
	}
	return session, nil
}

func (r sessionReader) FindSessionByID(_ context.Context, sessionID string) (*domain.CashSession, error) {
	var session domain.CashSession
	var ok bool
	r.s.read(func(st *state) { session, ok = st.sessions[sessionID] })
	if !ok {
		return nil, fmt.Errorf("%w: cash session %s", apperrors.ErrNotFound, sessionID)
	}
	return &session, nil
}

func (r sessionReader) ListSessions(_ context.Context, filter portsrepo.SessionFilter) ([]domain.CashSession, error) {
	sessions := make([]domain.CashSession, 0)
	r.s.read(func(st *state) {
		for _, s := range st.sessions {
			if s.BranchID != filter.BranchID {
				continue
			}
			if !filter.From.IsZero() && s.OpenedAt.Before(filter.From) {
				continue
			}
			if !filter.To.IsZero() && !s.OpenedAt.Before(filter.To) {
				continue
			}
			sessions = append(sessions, s)
		}
	})
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].OpenedAt.Equal(sessions[j].OpenedAt) {
			return sessions[i].OpenedAt.After(sessions[j].OpenedAt)
		}
		return sessions[i].SessionID > sessions[j].SessionID
	})
	if filter.Limit > 0 && len(sessions) > filter.Limit {
		sessions = sessions[:filter.Limit]
	}
	return sessions, nil
}

func findOpen(st *state, branchID string) *domain.CashSession {
	id, ok := st.openByBranch[branchID]
	if !ok {
		return nil
	}
	s := st.sessions[id]
	return &s
}

type sessionTx struct{ st *state }

var _ portsrepo.CashSessionTxRepository = sessionTx{}

func (t sessionTx) FindOpenSessionForUpdate(_ context.Context, branchID string) (*domain.CashSession, error) {
	session := findOpen(t.st, branchID)
	if session == nil {
		return nil, fmt.Errorf("%w: open session of branch %s", apperrors.ErrNotFound, branchID)
	}
	return session, nil
}

func (t sessionTx) FindSessionByIDForUpdate(_ context.Context, sessionID string) (*domain.CashSession, error) {
	session, ok := t.st.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: cash session %s", apperrors.ErrNotFound, sessionID)
	}
	return &session, nil
}

func (t sessionTx) InsertSession(_ context.Context, session domain.CashSession) error {
	if _, open := t.st.openByBranch[session.BranchID]; open {
		return fmt.Errorf("%w: branch %s", apperrors.ErrSessionAlreadyOpen, session.BranchID)
	}
	if _, exists := t.st.sessions[session.SessionID]; exists {
		return fmt.Errorf("%w: cash session %s", apperrors.ErrDuplicate, session.SessionID)
	}
	session.Version = 1
	t.st.sessions[session.SessionID] = session
	if session.Status == domain.SessionOpen {
		t.st.openByBranch[session.BranchID] = session.SessionID
	}
	return nil
}

func (t sessionTx) AddSales(_ context.Context, sessionID string, method domain.PaymentMethod, amount decimal.Decimal) error {
	session, ok := t.st.sessions[sessionID]
	if !ok || session.Status != domain.SessionOpen {
		return fmt.Errorf("%w: session %s", apperrors.ErrSessionClosed, sessionID)
	}
	if err := session.Sales.Add(method, amount); err != nil {
		return err
	}
	session.Version++
	t.st.sessions[sessionID] = session
	return nil
}

func (t sessionTx) UpdateSession(_ context.Context, session domain.CashSession) error {
	current, ok := t.st.sessions[session.SessionID]
	if !ok {
		return fmt.Errorf("%w: cash session %s", apperrors.ErrNotFound, session.SessionID)
	}
	if current.Version != session.Version {
		return fmt.Errorf("%w: cash session %s changed concurrently", apperrors.ErrConcurrencyConflict, session.SessionID)
	}
	// accumulators are owned by AddSales
	session.Sales = current.Sales
	session.Version++
	t.st.sessions[session.SessionID] = session
	if session.Status != domain.SessionOpen && t.st.openByBranch[session.BranchID] == session.SessionID {
		delete(t.st.openByBranch, session.BranchID)
	}
	return nil
}
