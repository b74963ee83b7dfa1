package domain

import "time"

// ActivityAction names an audited business action.
type ActivityAction string

const (
	ActivitySale           ActivityAction = "SALE"
	ActivitySaleVoid       ActivityAction = "SALE_VOID"
	ActivityCashOpen       ActivityAction = "CASH_OPEN"
	ActivityCashHandover   ActivityAction = "CASH_HANDOVER"
	ActivityCashClose      ActivityAction = "CASH_CLOSE"
	ActivityInventoryMove  ActivityAction = "INVENTORY_MOVE"
	ActivityDeliveryCancel ActivityAction = "DELIVERY_CANCEL"
)

// ActivityLog is an append-only audit entry.
type ActivityLog struct {
	ActivityID  string         `json:"activityID"`
	BranchID    string         `json:"branchID"`
	UserID      string         `json:"userID"`
	Action      ActivityAction `json:"action"`
	EntityID    string         `json:"entityID"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}
