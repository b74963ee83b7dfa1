package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vetpos_backend/internal/models"
	"github.com/SscSPs/vetpos_backend/internal/utils/mapping"
	"github.com/SscSPs/vetpos_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const saleColumns = `sale_id, branch_id, cash_session_id, subtotal, discount_amount, total,
	payment_method, status, channel, customer_id, voided_at, void_reason, voided_by,
	created_at, created_by, last_updated_at, last_updated_by, cash_received, cash_change`

const saleItemColumns = `sale_id, line_no, product_id, name, item_type, category, quantity,
	unit_price, discount_percent, subtotal, discount_amount, total, professional_id, tracks_stock`

type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(pool *pgxpool.Pool) *PgxSaleRepository {
	return &PgxSaleRepository{BaseRepository: newBaseRepository(pool)}
}

func (r *PgxSaleRepository) withTx(tx pgx.Tx) *PgxSaleRepository {
	return &PgxSaleRepository{BaseRepository: r.bound(tx)}
}

var (
	_ portsrepo.SaleReader       = (*PgxSaleRepository)(nil)
	_ portsrepo.SaleTxRepository = (*PgxSaleRepository)(nil)
)

// InsertSale persists a sale and its items.
func (r *PgxSaleRepository) InsertSale(ctx context.Context, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	saleQuery := `INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`
	itemQuery := `INSERT INTO sale_items (` + saleItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`

	batch := &pgx.Batch{}
	batch.Queue(saleQuery,
		m.SaleID,
		m.BranchID,
		m.CashSessionID,
		m.Subtotal,
		m.DiscountAmount,
		m.Total,
		m.PaymentMethod,
		m.Status,
		m.Channel,
		m.CustomerID,
		m.VoidedAt,
		m.VoidReason,
		m.VoidedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.CashReceived,
		m.CashChange,
	)
	for _, item := range mapping.ToModelSaleItems(sale) {
		batch.Queue(itemQuery,
			item.SaleID,
			item.LineNo,
			item.ProductID,
			item.Name,
			item.ItemType,
			item.Category,
			item.Quantity,
			item.UnitPrice,
			item.DiscountPercent,
			item.Subtotal,
			item.DiscountAmount,
			item.Total,
			item.ProfessionalID,
			item.TracksStock,
		)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return mapPgError(err, "failed to insert sale "+sale.SaleID)
	}
	return nil
}

// FindSaleByID retrieves a sale with its items.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return r.findSale(ctx, saleID, "")
}

// FindSaleByIDForUpdate retrieves and locks a sale.
func (r *PgxSaleRepository) FindSaleByIDForUpdate(ctx context.Context, saleID string) (*domain.Sale, error) {
	return r.findSale(ctx, saleID, " FOR UPDATE")
}

func (r *PgxSaleRepository) findSale(ctx context.Context, saleID, lockClause string) (*domain.Sale, error) {
	query := "SELECT " + saleColumns + " FROM sales WHERE sale_id = $1" + lockClause + ";"
	m, err := scanSale(r.db.QueryRow(ctx, query, saleID))
	if err != nil {
		return nil, mapPgError(err, "sale "+saleID)
	}
	items, err := r.findItems(ctx, []string{saleID})
	if err != nil {
		return nil, err
	}
	sale := mapping.ToDomainSale(m, items[saleID])
	return &sale, nil
}

func (r *PgxSaleRepository) findItems(ctx context.Context, saleIDs []string) (map[string][]models.SaleItem, error) {
	query := "SELECT " + saleItemColumns + " FROM sale_items WHERE sale_id = ANY($1) ORDER BY sale_id, line_no;"
	rows, err := r.db.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, mapPgError(err, "failed to query sale items")
	}
	defer rows.Close()

	items := make(map[string][]models.SaleItem, len(saleIDs))
	for rows.Next() {
		var it models.SaleItem
		err := rows.Scan(
			&it.SaleID,
			&it.LineNo,
			&it.ProductID,
			&it.Name,
			&it.ItemType,
			&it.Category,
			&it.Quantity,
			&it.UnitPrice,
			&it.DiscountPercent,
			&it.Subtotal,
			&it.DiscountAmount,
			&it.Total,
			&it.ProfessionalID,
			&it.TracksStock,
		)
		if err != nil {
			return nil, mapPgError(err, "failed to scan sale item")
		}
		items[it.SaleID] = append(items[it.SaleID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating sale items")
	}
	return items, nil
}

// MarkSaleVoided persists the void fields. Only a COMPLETED row is updated.
func (r *PgxSaleRepository) MarkSaleVoided(ctx context.Context, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	query := `
		UPDATE sales
		SET status = $2, voided_at = $3, void_reason = $4, voided_by = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE sale_id = $1 AND status = 'COMPLETED';
	`
	tag, err := r.db.Exec(ctx, query, m.SaleID, m.Status, m.VoidedAt, m.VoidReason, m.VoidedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapPgError(err, "failed to void sale "+sale.SaleID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s is not completed", apperrors.ErrSaleNotVoidable, sale.SaleID)
	}
	return nil
}

// ListSales retrieves sales newest first using token-based pagination.
func (r *PgxSaleRepository) ListSales(ctx context.Context, filter portsrepo.SaleFilter, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	conditions := []string{"TRUE"}
	args := []any{}
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		conditions = append(conditions, "branch_id = $"+strconv.Itoa(len(args)))
	}
	if filter.CashSessionID != "" {
		args = append(args, filter.CashSessionID)
		conditions = append(conditions, "cash_session_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.CreatedBy != "" {
		args = append(args, filter.CreatedBy)
		conditions = append(conditions, "created_by = $"+strconv.Itoa(len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conditions = append(conditions, "created_at >= $"+strconv.Itoa(len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conditions = append(conditions, "created_at < $"+strconv.Itoa(len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		args = append(args, lastCreatedAt, lastID)
		conditions = append(conditions, "(created_at, sale_id) < ($"+strconv.Itoa(len(args)-1)+", $"+strconv.Itoa(len(args))+")")
	}
	args = append(args, fetchLimit)
	query := "SELECT " + saleColumns + " FROM sales WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY created_at DESC, sale_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapPgError(err, "failed to query sales")
	}
	modelSales := make([]models.Sale, 0, fetchLimit)
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, nil, mapPgError(err, "failed to scan sale")
		}
		modelSales = append(modelSales, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, mapPgError(err, "error iterating sales")
	}

	var nextTokenVal *string
	results := modelSales
	if len(modelSales) > limit {
		last := modelSales[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.SaleID)
		nextTokenVal = &token
		results = modelSales[:limit]
	}
	if len(results) == 0 {
		return []domain.Sale{}, nil, nil
	}

	ids := make([]string, len(results))
	for i, m := range results {
		ids[i] = m.SaleID
	}
	items, err := r.findItems(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	sales := make([]domain.Sale, len(results))
	for i, m := range results {
		sales[i] = mapping.ToDomainSale(m, items[m.SaleID])
	}
	return sales, nextTokenVal, nil
}

// SessionPaymentTotals aggregates the sales of a cash session by status and method.
func (r *PgxSaleRepository) SessionPaymentTotals(ctx context.Context, sessionID string) ([]domain.PaymentTotal, error) {
	query := `
		SELECT status, payment_method, COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE cash_session_id = $1
		GROUP BY status, payment_method
		ORDER BY status, payment_method;
	`
	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, mapPgError(err, "failed to aggregate sales of session "+sessionID)
	}
	defer rows.Close()

	var totals []models.PaymentTotal
	for rows.Next() {
		var t models.PaymentTotal
		if err := rows.Scan(&t.Status, &t.PaymentMethod, &t.Total, &t.Count); err != nil {
			return nil, mapPgError(err, "failed to scan payment total")
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating payment totals")
	}
	return mapping.ToDomainPaymentTotals(totals), nil
}

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.BranchID,
		&m.CashSessionID,
		&m.Subtotal,
		&m.DiscountAmount,
		&m.Total,
		&m.PaymentMethod,
		&m.Status,
		&m.Channel,
		&m.CustomerID,
		&m.VoidedAt,
		&m.VoidReason,
		&m.VoidedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.CashReceived,
		&m.CashChange,
	)
	return m, err
}
