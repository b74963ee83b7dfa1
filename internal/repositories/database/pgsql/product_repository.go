package pgsql

import (
	"context"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) *PgxProductRepository {
	return &PgxProductRepository{BaseRepository: newBaseRepository(pool)}
}

var _ portsrepo.ProductReader = (*PgxProductRepository)(nil)

// FindProductsByIDs retrieves products with their branch price overrides.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	products := make(map[string]domain.Product, len(productIDs))
	if len(productIDs) == 0 {
		return products, nil
	}
	query := `
		SELECT product_id, name, kind, category, tracks_stock, sale_price, purchase_price,
		       tax_percent, stock_alert_threshold, is_active
		FROM products
		WHERE product_id = ANY($1);
	`
	rows, err := r.db.Query(ctx, query, productIDs)
	if err != nil {
		return nil, mapPgError(err, "failed to query products")
	}
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ProductID, &p.Name, &p.Kind, &p.Category, &p.TracksStock, &p.SalePrice,
			&p.PurchasePrice, &p.TaxPercent, &p.StockAlertThreshold, &p.IsActive)
		if err != nil {
			rows.Close()
			return nil, mapPgError(err, "failed to scan product")
		}
		products[p.ProductID] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating products")
	}

	priceRows, err := r.db.Query(ctx,
		`SELECT product_id, branch_id, price FROM product_branch_prices WHERE product_id = ANY($1);`, productIDs)
	if err != nil {
		return nil, mapPgError(err, "failed to query branch prices")
	}
	defer priceRows.Close()
	for priceRows.Next() {
		var productID, branchID string
		var price decimal.Decimal
		if err := priceRows.Scan(&productID, &branchID, &price); err != nil {
			return nil, mapPgError(err, "failed to scan branch price")
		}
		p, ok := products[productID]
		if !ok {
			continue
		}
		if p.BranchPrices == nil {
			p.BranchPrices = make(map[string]decimal.Decimal)
		}
		p.BranchPrices[branchID] = price
		products[productID] = p
	}
	if err := priceRows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating branch prices")
	}
	return products, nil
}
