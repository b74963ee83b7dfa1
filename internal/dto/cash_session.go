package dto

import (
	"time"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest opens a drawer. The balance is derived from the count.
type OpenSessionRequest struct {
	BranchID             string               `json:"branchID" binding:"required"`
	OpeningDenominations domain.Denominations `json:"openingDenominations" binding:"denominations"`
}

// HandoverRequest records a mid-shift count.
type HandoverRequest struct {
	Denominations domain.Denominations `json:"denominations" binding:"denominations"`
	TargetUserID  string               `json:"targetUserID" binding:"required"`
	Date          *time.Time           `json:"date"`
}

// CloseSessionRequest carries the closing count and manual declarations.
type CloseSessionRequest struct {
	ClosingDenominations domain.Denominations `json:"closingDenominations" binding:"denominations"`
	ManualTransfer       decimal.Decimal      `json:"manualTransfer"`
	ManualCardTerminal   decimal.Decimal      `json:"manualCardTerminal"`
	ManualWithdrawals    decimal.Decimal      `json:"manualWithdrawals"`
	ManualExpenses       decimal.Decimal      `json:"manualExpenses"`
	ManualDebt           decimal.Decimal      `json:"manualDebt"`
	ManualOtherDayCash   decimal.Decimal      `json:"manualOtherDayCash"`
	ManualOtherDayCard   decimal.Decimal      `json:"manualOtherDayCard"`
	ManualNextDayFloat   decimal.Decimal      `json:"manualNextDayFloat"`
}

// Adjustments maps the manual fields onto the domain type.
func (r CloseSessionRequest) Adjustments() domain.CloseAdjustments {
	return domain.CloseAdjustments{
		Transfer:     r.ManualTransfer,
		CardTerminal: r.ManualCardTerminal,
		Withdrawals:  r.ManualWithdrawals,
		Expenses:     r.ManualExpenses,
		Debt:         r.ManualDebt,
		OtherDayCash: r.ManualOtherDayCash,
		OtherDayCard: r.ManualOtherDayCard,
		NextDayFloat: r.ManualNextDayFloat,
	}
}

// ListSessionsParams are the query parameters for session history.
type ListSessionsParams struct {
	BranchID string    `form:"branch_id" binding:"required"`
	From     time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To       time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit    int       `form:"limit"`
}
