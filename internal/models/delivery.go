package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryOrder is a row of the delivery_orders table.
type DeliveryOrder struct {
	DeliveryID       string          `db:"delivery_id"`
	SaleID           string          `db:"sale_id"` // Unique
	BranchID         string          `db:"branch_id"`
	CustomerSnapshot []byte          `db:"customer_snapshot"` // JSONB
	ShippingCost     decimal.Decimal `db:"shipping_cost"`
	ScheduledAt      sql.NullTime    `db:"scheduled_at"`
	Status           string          `db:"status"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// ActivityLog is a row of the activity_logs table.
type ActivityLog struct {
	ActivityID  string    `db:"activity_id"`
	BranchID    string    `db:"branch_id"`
	UserID      string    `db:"user_id"`
	Action      string    `db:"action"`
	EntityID    string    `db:"entity_id"`
	Description string    `db:"description"`
	Metadata    []byte    `db:"metadata"` // JSONB
	CreatedAt   time.Time `db:"created_at"`
}
