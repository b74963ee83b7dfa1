package models

import (
	"database/sql"
	"time"
)

// InventoryMovement is a row of the append-only inventory_movements table.
type InventoryMovement struct {
	MovementID      string         `db:"movement_id"`
	MovementType    string         `db:"movement_type"`
	ProductID       string         `db:"product_id"`
	Quantity        int            `db:"quantity"` // Always positive; direction comes from the branches
	FromBranchID    sql.NullString `db:"from_branch_id"`
	ToBranchID      sql.NullString `db:"to_branch_id"`
	Reason          string         `db:"reason"`
	ReferenceSaleID sql.NullString `db:"reference_sale_id"`
	TransferID      sql.NullString `db:"transfer_id"` // Shared by both legs of a transfer
	CreatedAt       time.Time      `db:"created_at"`
	CreatedBy       string         `db:"created_by"`
}
