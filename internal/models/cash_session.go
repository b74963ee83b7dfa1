package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// CashSession is a row of the cash_sessions table. Denomination counts,
// close adjustments and the handover count are stored as JSONB.
type CashSession struct {
	SessionID              string              `db:"session_id"`
	BranchID               string              `db:"branch_id"`
	Status                 string              `db:"status"` // OPEN or CLOSED; one OPEN per branch
	OpenedAt               time.Time           `db:"opened_at"`
	OpenedBy               string              `db:"opened_by"`
	OpeningBalance         decimal.Decimal     `db:"opening_balance"`
	OpeningDenominations   []byte              `db:"opening_denominations"`
	SalesCash              decimal.Decimal     `db:"sales_cash"`
	SalesDebit             decimal.Decimal     `db:"sales_debit"`
	SalesCredit            decimal.Decimal     `db:"sales_credit"`
	SalesTransfer          decimal.Decimal     `db:"sales_transfer"`
	SalesDebt              decimal.Decimal     `db:"sales_debt"`
	ClosingBalanceExpected decimal.NullDecimal `db:"closing_balance_expected"`
	ClosingBalanceReal     decimal.NullDecimal `db:"closing_balance_real"`
	ClosingDenominations   []byte              `db:"closing_denominations"`
	Variance               decimal.NullDecimal `db:"variance"`
	TotalDeclared          decimal.NullDecimal `db:"total_declared"`
	Adjustments            []byte              `db:"adjustments"`
	ClosedAt               sql.NullTime        `db:"closed_at"`
	ClosedBy               sql.NullString      `db:"closed_by"`
	Handover               []byte              `db:"handover"`
	Version                int64               `db:"version"`
}
