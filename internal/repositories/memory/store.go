// Package memory is a map-backed implementation of the repository ports.
// Transactions are serialized and work on a private copy of the state that
// replaces the shared state only when the transaction function succeeds.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
)

type state struct {
	products     map[string]domain.Product
	stock        map[domain.StockKey]domain.StockEntry
	movements    []domain.InventoryMovement
	sales        map[string]domain.Sale
	sessions     map[string]domain.CashSession
	openByBranch map[string]string // branch id -> open session id
	deliveries   map[string]domain.DeliveryOrder
	activity     []domain.ActivityLog
}

func newState() *state {
	return &state{
		products:     make(map[string]domain.Product),
		stock:        make(map[domain.StockKey]domain.StockEntry),
		sales:        make(map[string]domain.Sale),
		sessions:     make(map[string]domain.CashSession),
		openByBranch: make(map[string]string),
		deliveries:   make(map[string]domain.DeliveryOrder),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:     make(map[string]domain.Product, len(s.products)),
		stock:        make(map[domain.StockKey]domain.StockEntry, len(s.stock)),
		movements:    append([]domain.InventoryMovement(nil), s.movements...),
		sales:        make(map[string]domain.Sale, len(s.sales)),
		sessions:     make(map[string]domain.CashSession, len(s.sessions)),
		openByBranch: make(map[string]string, len(s.openByBranch)),
		deliveries:   make(map[string]domain.DeliveryOrder, len(s.deliveries)),
		activity:     append([]domain.ActivityLog(nil), s.activity...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.openByBranch {
		c.openByBranch[k] = v
	}
	for k, v := range s.deliveries {
		c.deliveries[k] = v
	}
	return c
}

// Store holds every table in memory.
type Store struct {
	txMu sync.Mutex // serializes transactions
	mu   sync.RWMutex
	st   *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Provider exposes the store through the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       s,
		StockRepo:       stockReader{s},
		SaleRepo:        saleReader{s},
		CashSessionRepo: sessionReader{s},
		DeliveryRepo:    deliveryReader{s},
		ActivityRepo:    activityReader{s},
		ProductRepo:     productReader{s},
	}
}

// PutProduct adds or replaces a catalog product.
func (s *Store) PutProduct(p domain.Product) {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.products[p.ProductID] = p
}

// read runs fn against the committed state.
func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

var _ portsrepo.TransactionManager = (*Store)(nil)

// WithinTx runs fn against a copy of the state and publishes it when fn
// returns nil and ctx is still live.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(ctx, &unitOfWork{st: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

type unitOfWork struct {
	st *state
}

var _ portsrepo.UnitOfWork = (*unitOfWork)(nil)

// LockBranch is a no-op; transactions are already serialized.
func (u *unitOfWork) LockBranch(context.Context, string) error { return nil }

func (u *unitOfWork) Stock() portsrepo.StockTxRepository { return stockTx{u.st} }
func (u *unitOfWork) Sales() portsrepo.SaleTxRepository { return saleTx{u.st} }
func (u *unitOfWork) CashSessions() portsrepo.CashSessionTxRepository { return sessionTx{u.st} }
func (u *unitOfWork) Deliveries() portsrepo.DeliveryTxRepository { return deliveryTx{u.st} }
func (u *unitOfWork) Activity() portsrepo.ActivityWriter { return activityTx{u.st} }
