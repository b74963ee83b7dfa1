package repositories

import (
	"context"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
)

// DeliveryReader defines read operations for delivery orders
type DeliveryReader interface {
	FindDeliveryBySaleID(ctx context.Context, saleID string) (*domain.DeliveryOrder, error)
}

// DeliveryTxRepository defines delivery writes performed inside a unit of work.
type DeliveryTxRepository interface {
	InsertDeliveryOrder(ctx context.Context, order domain.DeliveryOrder) error
	FindDeliveryBySaleIDForUpdate(ctx context.Context, saleID string) (*domain.DeliveryOrder, error)
	UpdateDeliveryStatus(ctx context.Context, order domain.DeliveryOrder) error
}
