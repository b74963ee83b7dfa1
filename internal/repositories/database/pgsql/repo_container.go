package pgsql

import (
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories around one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	txManager := newPgxTxManager(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:       txManager,
		StockRepo:       txManager.stock,
		SaleRepo:        txManager.sales,
		CashSessionRepo: txManager.sessions,
		DeliveryRepo:    txManager.delivery,
		ActivityRepo:    txManager.activity,
		ProductRepo:     newPgxProductRepository(dbPool),
	}
}
