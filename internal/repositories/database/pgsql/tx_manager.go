package pgsql

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultLockTimeout bounds row and advisory lock waits. A timeout surfaces
// as lock_not_available and is retried as a concurrency conflict.
const defaultLockTimeout = 5 * time.Second

// PgxTxManager runs units of work in READ COMMITTED transactions with row locks.
type PgxTxManager struct {
	BaseRepository
	lockTimeout time.Duration

	stock    *PgxStockRepository
	sales    *PgxSaleRepository
	sessions *PgxCashSessionRepository
	delivery *PgxDeliveryRepository
	activity *PgxActivityRepository
}

func newPgxTxManager(pool *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{
		BaseRepository: newBaseRepository(pool),
		lockTimeout:    defaultLockTimeout,
		stock:          newPgxStockRepository(pool),
		sales:          newPgxSaleRepository(pool),
		sessions:       newPgxCashSessionRepository(pool),
		delivery:       newPgxDeliveryRepository(pool),
		activity:       newPgxActivityRepository(pool),
	}
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

// WithinTx runs fn in a transaction. It commits only when fn returns nil.
func (m *PgxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) (err error) {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = m.Rollback(context.WithoutCancel(ctx), tx)
			panic(p)
		}
		if err != nil {
			// rollback must run even if ctx was cancelled
			_ = m.Rollback(context.WithoutCancel(ctx), tx)
		}
	}()

	if m.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds())
		if _, err = tx.Exec(ctx, stmt); err != nil {
			return mapPgError(err, "failed to set lock timeout")
		}
	}

	uow := &pgxUnitOfWork{tx: tx, manager: m}
	if err = fn(ctx, uow); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}

type pgxUnitOfWork struct {
	tx      pgx.Tx
	manager *PgxTxManager
}

var _ portsrepo.UnitOfWork = (*pgxUnitOfWork)(nil)

// LockBranch takes a transaction-scoped advisory lock keyed by the branch id.
func (u *pgxUnitOfWork) LockBranch(ctx context.Context, branchID string) error {
	if _, err := u.tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, branchID); err != nil {
		return mapPgError(err, "failed to lock branch "+branchID)
	}
	return nil
}

func (u *pgxUnitOfWork) Stock() portsrepo.StockTxRepository {
	return u.manager.stock.withTx(u.tx)
}

func (u *pgxUnitOfWork) Sales() portsrepo.SaleTxRepository {
	return u.manager.sales.withTx(u.tx)
}

func (u *pgxUnitOfWork) CashSessions() portsrepo.CashSessionTxRepository {
	return u.manager.sessions.withTx(u.tx)
}

func (u *pgxUnitOfWork) Deliveries() portsrepo.DeliveryTxRepository {
	return u.manager.delivery.withTx(u.tx)
}

func (u *pgxUnitOfWork) Activity() portsrepo.ActivityWriter {
	return u.manager.activity.withTx(u.tx)
}
