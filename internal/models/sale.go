package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Sale is a row of the sales table.
type Sale struct {
	SaleID         string              `db:"sale_id"`         // Primary Key (UUID)
	BranchID       string              `db:"branch_id"`       // Not Null
	CashSessionID  string              `db:"cash_session_id"` // FK -> cash_sessions
	Subtotal       decimal.Decimal     `db:"subtotal"`        // Σ rounded line gross
	DiscountAmount decimal.Decimal     `db:"discount_amount"` // Σ rounded line discount
	Total          decimal.Decimal     `db:"total"`           // subtotal - discount_amount
	PaymentMethod  string              `db:"payment_method"`  // CASH, DEBIT, CREDIT, TRANSFER, DEBT
	Status         string              `db:"status"`          // COMPLETED or VOIDED
	Channel        string              `db:"channel"`         // STORE or DELIVERY
	CustomerID     sql.NullString      `db:"customer_id"`     // Required for DEBT
	VoidedAt       sql.NullTime        `db:"voided_at"`
	VoidReason     sql.NullString      `db:"void_reason"`
	VoidedBy       sql.NullString      `db:"voided_by"`
	CashReceived   decimal.NullDecimal `db:"cash_received"` // CASH sales only
	CashChange     decimal.NullDecimal `db:"cash_change"`   // cash_received - total
	AuditFields
}

// SaleItem is a row of the sale_items table.
type SaleItem struct {
	SaleID          string          `db:"sale_id"`
	LineNo          int             `db:"line_no"`
	ProductID       sql.NullString  `db:"product_id"` // Null for ad hoc lines
	Name            string          `db:"name"`
	ItemType        string          `db:"item_type"`
	Category        string          `db:"category"`
	Quantity        int             `db:"quantity"`
	UnitPrice       decimal.Decimal `db:"unit_price"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	Subtotal        decimal.Decimal `db:"subtotal"`
	DiscountAmount  decimal.Decimal `db:"discount_amount"`
	Total           decimal.Decimal `db:"total"`
	ProfessionalID  sql.NullString  `db:"professional_id"`
	TracksStock     bool            `db:"tracks_stock"`
}

// PaymentTotal is one row of the per session status/method aggregate.
type PaymentTotal struct {
	Status        string          `db:"status"`
	PaymentMethod string          `db:"payment_method"`
	Total         decimal.Decimal `db:"total"`
	Count         int64           `db:"count"`
}
