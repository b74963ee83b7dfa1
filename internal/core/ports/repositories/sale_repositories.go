package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
)

// SaleFilter narrows sale listings. From is inclusive, To exclusive; zero
// times are open bounds.
type SaleFilter struct {
	BranchID      string
	CashSessionID string
	Status        domain.SaleStatus
	CreatedBy     string
	From          time.Time
	To            time.Time
}

// SaleReader defines read operations for sale data
type SaleReader interface {
	// FindSaleByID retrieves a sale with its items.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves sales newest first using token-based pagination.
	ListSales(ctx context.Context, filter SaleFilter, limit int, nextToken *string) ([]domain.Sale, *string, error)

	// SessionPaymentTotals aggregates the sales of a cash session by status and method.
	SessionPaymentTotals(ctx context.Context, sessionID string) ([]domain.PaymentTotal, error)
}

// SaleTxRepository defines sale writes performed inside a unit of work.
type SaleTxRepository interface {
	// InsertSale persists a sale and its items.
	InsertSale(ctx context.Context, sale domain.Sale) error

	// FindSaleByIDForUpdate retrieves and locks a sale.
	FindSaleByIDForUpdate(ctx context.Context, saleID string) (*domain.Sale, error)

	// MarkSaleVoided persists the void fields of sale.
	MarkSaleVoided(ctx context.Context, sale domain.Sale) error
}
