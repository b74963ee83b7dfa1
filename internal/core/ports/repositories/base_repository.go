package repositories

import "context"

// UnitOfWork exposes the repositories bound to a single transaction.
// Everything written through it commits or rolls back together.
type UnitOfWork interface {
	// LockBranch serializes cash-session work for a branch until the transaction ends.
	LockBranch(ctx context.Context, branchID string) error

	Stock() StockTxRepository
	Sales() SaleTxRepository
	CashSessions() CashSessionTxRepository
	Deliveries() DeliveryTxRepository
	Activity() ActivityWriter
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTx runs fn in a transaction. A non-nil error from fn, a panic or a
	// cancelled context rolls it back.
	WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}
