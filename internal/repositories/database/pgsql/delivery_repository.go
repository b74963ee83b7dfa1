package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vetpos_backend/internal/models"
	"github.com/SscSPs/vetpos_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const deliveryColumns = `delivery_id, sale_id, branch_id, customer_snapshot, shipping_cost, scheduled_at,
	status, created_at, updated_at`

type PgxDeliveryRepository struct {
	BaseRepository
}

func newPgxDeliveryRepository(pool *pgxpool.Pool) *PgxDeliveryRepository {
	return &PgxDeliveryRepository{BaseRepository: newBaseRepository(pool)}
}

func (r *PgxDeliveryRepository) withTx(tx pgx.Tx) *PgxDeliveryRepository {
	return &PgxDeliveryRepository{BaseRepository: r.bound(tx)}
}

var (
	_ portsrepo.DeliveryReader       = (*PgxDeliveryRepository)(nil)
	_ portsrepo.DeliveryTxRepository = (*PgxDeliveryRepository)(nil)
)

// InsertDeliveryOrder persists the dispatch record of a delivery sale.
func (r *PgxDeliveryRepository) InsertDeliveryOrder(ctx context.Context, order domain.DeliveryOrder) error {
	m, err := mapping.ToModelDeliveryOrder(order)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode delivery order", err)
	}
	query := `INSERT INTO delivery_orders (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err = r.db.Exec(ctx, query,
		m.DeliveryID,
		m.SaleID,
		m.BranchID,
		m.CustomerSnapshot,
		m.ShippingCost,
		m.ScheduledAt,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return mapPgError(err, "failed to insert delivery order for sale "+order.SaleID)
	}
	return nil
}

// FindDeliveryBySaleID retrieves the delivery order of a sale.
func (r *PgxDeliveryRepository) FindDeliveryBySaleID(ctx context.Context, saleID string) (*domain.DeliveryOrder, error) {
	return r.find(ctx, saleID, "")
}

// FindDeliveryBySaleIDForUpdate locks and retrieves the delivery order of a sale.
func (r *PgxDeliveryRepository) FindDeliveryBySaleIDForUpdate(ctx context.Context, saleID string) (*domain.DeliveryOrder, error) {
	return r.find(ctx, saleID, " FOR UPDATE")
}

func (r *PgxDeliveryRepository) find(ctx context.Context, saleID, lockClause string) (*domain.DeliveryOrder, error) {
	query := "SELECT " + deliveryColumns + " FROM delivery_orders WHERE sale_id = $1" + lockClause + ";"
	var m models.DeliveryOrder
	err := r.db.QueryRow(ctx, query, saleID).Scan(
		&m.DeliveryID,
		&m.SaleID,
		&m.BranchID,
		&m.CustomerSnapshot,
		&m.ShippingCost,
		&m.ScheduledAt,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, mapPgError(err, "delivery order for sale "+saleID)
	}
	order, err := mapping.ToDomainDeliveryOrder(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode delivery order", err)
	}
	return &order, nil
}

// UpdateDeliveryStatus persists the status of order.
func (r *PgxDeliveryRepository) UpdateDeliveryStatus(ctx context.Context, order domain.DeliveryOrder) error {
	query := `UPDATE delivery_orders SET status = $2, updated_at = $3 WHERE delivery_id = $1;`
	tag, err := r.db.Exec(ctx, query, order.DeliveryID, string(order.Status), order.UpdatedAt)
	if err != nil {
		return mapPgError(err, "failed to update delivery "+order.DeliveryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: delivery %s", apperrors.ErrNotFound, order.DeliveryID)
	}
	return nil
}
