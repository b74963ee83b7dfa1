package repositories

import (
	"context"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
)

// StockFilter narrows stock entry queries. Empty fields match everything.
type StockFilter struct {
	BranchID  string
	ProductID string
}

// MovementFilter narrows movement queries.
type MovementFilter struct {
	BranchID  string
	ProductID string
	Type      domain.MovementType
}

// StockReader defines read operations for stock data
type StockReader interface {
	// FindStockEntries lists entries matching the filter.
	FindStockEntries(ctx context.Context, filter StockFilter) ([]domain.StockEntry, error)

	// ListMovements retrieves movements newest first using token-based pagination.
	// A movement matches BranchID when the branch is its source or destination.
	ListMovements(ctx context.Context, filter MovementFilter, limit int, nextToken *string) ([]domain.InventoryMovement, *string, error)

	// SumMovements returns the signed sum of every movement touching key.
	SumMovements(ctx context.Context, key domain.StockKey) (int, error)
}

// StockTxRepository defines stock writes performed inside a unit of work.
type StockTxRepository interface {
	// LockStockEntries selects and locks the entries for keys, in key order.
	// Keys without a row are absent from the result.
	LockStockEntries(ctx context.Context, keys []domain.StockKey) (map[domain.StockKey]domain.StockEntry, error)

	// SaveStockEntries writes entries. An entry with Version 0 is inserted;
	// otherwise it is updated only if the stored version still matches,
	// else ErrConcurrencyConflict.
	SaveStockEntries(ctx context.Context, entries []domain.StockEntry) error

	// InsertMovements appends movement rows.
	InsertMovements(ctx context.Context, movements []domain.InventoryMovement) error
}
