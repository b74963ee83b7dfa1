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

const movementColumns = `movement_id, movement_type, product_id, quantity, from_branch_id, to_branch_id,
	reason, reference_sale_id, transfer_id, created_at, created_by`

type PgxStockRepository struct {
	BaseRepository
}

func newPgxStockRepository(pool *pgxpool.Pool) *PgxStockRepository {
	return &PgxStockRepository{BaseRepository: newBaseRepository(pool)}
}

func (r *PgxStockRepository) withTx(tx pgx.Tx) *PgxStockRepository {
	return &PgxStockRepository{BaseRepository: r.bound(tx)}
}

var (
	_ portsrepo.StockReader       = (*PgxStockRepository)(nil)
	_ portsrepo.StockTxRepository = (*PgxStockRepository)(nil)
)

// FindStockEntries lists entries matching the filter.
func (r *PgxStockRepository) FindStockEntries(ctx context.Context, filter portsrepo.StockFilter) ([]domain.StockEntry, error) {
	query := `
		SELECT branch_id, product_id, quantity, version, updated_at
		FROM stock_entries
		WHERE ($1 = '' OR branch_id = $1) AND ($2 = '' OR product_id = $2)
		ORDER BY branch_id, product_id;
	`
	rows, err := r.db.Query(ctx, query, filter.BranchID, filter.ProductID)
	if err != nil {
		return nil, mapPgError(err, "failed to query stock entries")
	}
	defer rows.Close()

	entries := make([]domain.StockEntry, 0)
	for rows.Next() {
		var e domain.StockEntry
		if err := rows.Scan(&e.BranchID, &e.ProductID, &e.Quantity, &e.Version, &e.UpdatedAt); err != nil {
			return nil, mapPgError(err, "failed to scan stock entry")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating stock entries")
	}
	return entries, nil
}

// LockStockEntries selects the entries for keys FOR UPDATE. Rows are ordered
// with the C collation so the lock order matches domain.SortStockKeys.
func (r *PgxStockRepository) LockStockEntries(ctx context.Context, keys []domain.StockKey) (map[domain.StockKey]domain.StockEntry, error) {
	result := make(map[domain.StockKey]domain.StockEntry, len(keys))
	if len(keys) == 0 {
		return result, nil
	}
	branches := make([]string, len(keys))
	products := make([]string, len(keys))
	for i, k := range keys {
		branches[i] = k.BranchID
		products[i] = k.ProductID
	}
	query := `
		SELECT s.branch_id, s.product_id, s.quantity, s.version, s.updated_at
		FROM stock_entries s
		JOIN unnest($1::text[], $2::text[]) AS k(branch_id, product_id)
		  ON s.branch_id = k.branch_id AND s.product_id = k.product_id
		ORDER BY s.branch_id COLLATE "C", s.product_id COLLATE "C"
		FOR UPDATE OF s;
	`
	rows, err := r.db.Query(ctx, query, branches, products)
	if err != nil {
		return nil, mapPgError(err, "failed to lock stock entries")
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.StockEntry
		if err := rows.Scan(&e.BranchID, &e.ProductID, &e.Quantity, &e.Version, &e.UpdatedAt); err != nil {
			return nil, mapPgError(err, "failed to scan locked stock entry")
		}
		result[e.Key()] = e
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating locked stock entries")
	}
	return result, nil
}

// SaveStockEntries inserts new entries or updates existing ones under a
// version check. A lost race surfaces as ErrConcurrencyConflict.
func (r *PgxStockRepository) SaveStockEntries(ctx context.Context, entries []domain.StockEntry) error {
	if len(entries) == 0 {
		return nil
	}
	insertQuery := `
		INSERT INTO stock_entries (branch_id, product_id, quantity, version, updated_at)
		VALUES ($1, $2, $3, 1, $4)
		ON CONFLICT (branch_id, product_id) DO NOTHING;
	`
	updateQuery := `
		UPDATE stock_entries
		SET quantity = $3, version = version + 1, updated_at = $4
		WHERE branch_id = $1 AND product_id = $2 AND version = $5;
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		if e.Version == 0 {
			batch.Queue(insertQuery, e.BranchID, e.ProductID, e.Quantity, e.UpdatedAt)
		} else {
			batch.Queue(updateQuery, e.BranchID, e.ProductID, e.Quantity, e.UpdatedAt, e.Version)
		}
	}
	br := r.db.SendBatch(ctx, batch)
	defer br.Close()
	for _, e := range entries {
		tag, err := br.Exec()
		if err != nil {
			return mapPgError(err, "failed to save stock entry "+e.Key().String())
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: stock entry %s changed concurrently", apperrors.ErrConcurrencyConflict, e.Key().String())
		}
	}
	return mapPgError(br.Close(), "failed to save stock entries")
}

// InsertMovements appends movement rows.
func (r *PgxStockRepository) InsertMovements(ctx context.Context, movements []domain.InventoryMovement) error {
	if len(movements) == 0 {
		return nil
	}
	query := `INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	batch := &pgx.Batch{}
	for _, d := range movements {
		m := mapping.ToModelMovement(d)
		batch.Queue(query,
			m.MovementID,
			m.MovementType,
			m.ProductID,
			m.Quantity,
			m.FromBranchID,
			m.ToBranchID,
			m.Reason,
			m.ReferenceSaleID,
			m.TransferID,
			m.CreatedAt,
			m.CreatedBy,
		)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return mapPgError(err, "failed to insert movements")
	}
	return nil
}

// ListMovements retrieves movements newest first using token-based pagination.
func (r *PgxStockRepository) ListMovements(ctx context.Context, filter portsrepo.MovementFilter, limit int, nextToken *string) ([]domain.InventoryMovement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	conditions := []string{"TRUE"}
	args := []any{}
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(from_branch_id = $"+n+" OR to_branch_id = $"+n+")")
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		conditions = append(conditions, "product_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conditions = append(conditions, "movement_type = $"+strconv.Itoa(len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		args = append(args, lastCreatedAt, lastID)
		conditions = append(conditions, "(created_at, movement_id) < ($"+strconv.Itoa(len(args)-1)+", $"+strconv.Itoa(len(args))+")")
	}
	args = append(args, fetchLimit)
	query := "SELECT " + movementColumns + " FROM inventory_movements WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY created_at DESC, movement_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapPgError(err, "failed to query movements")
	}
	defer rows.Close()

	modelMovements := make([]models.InventoryMovement, 0, fetchLimit)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, nil, err
		}
		modelMovements = append(modelMovements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapPgError(err, "error iterating movements")
	}

	var nextTokenVal *string
	results := modelMovements
	if len(modelMovements) > limit {
		last := modelMovements[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MovementID)
		nextTokenVal = &token
		results = modelMovements[:limit]
	}

	movements := make([]domain.InventoryMovement, len(results))
	for i, m := range results {
		movements[i] = mapping.ToDomainMovement(m)
	}
	return movements, nextTokenVal, nil
}

// SumMovements returns the signed sum of every movement touching key.
func (r *PgxStockRepository) SumMovements(ctx context.Context, key domain.StockKey) (int, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN to_branch_id = $1 THEN quantity ELSE 0 END -
			CASE WHEN from_branch_id = $1 THEN quantity ELSE 0 END
		), 0)
		FROM inventory_movements
		WHERE product_id = $2 AND (from_branch_id = $1 OR to_branch_id = $1);
	`
	var sum int64
	if err := r.db.QueryRow(ctx, query, key.BranchID, key.ProductID).Scan(&sum); err != nil {
		return 0, mapPgError(err, "failed to sum movements for "+key.String())
	}
	return int(sum), nil
}

func scanMovement(row pgx.Row) (models.InventoryMovement, error) {
	var m models.InventoryMovement
	err := row.Scan(
		&m.MovementID,
		&m.MovementType,
		&m.ProductID,
		&m.Quantity,
		&m.FromBranchID,
		&m.ToBranchID,
		&m.Reason,
		&m.ReferenceSaleID,
		&m.TransferID,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return m, mapPgError(err, "failed to scan movement")
	}
	return m, nil
}
