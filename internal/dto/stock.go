package dto

import "github.com/SscSPs/vetpos_backend/internal/core/domain"

// CreateMovementRequest is a manual stock movement: receiving, write-off or transfer.
type CreateMovementRequest struct {
	Type         domain.MovementType `json:"type" binding:"required,oneof=IN OUT TRANSFER"`
	ProductID    string              `json:"productID" binding:"required"`
	Quantity     int                 `json:"quantity" binding:"required,gt=0,lte=2147483647"`
	FromBranchID *string             `json:"fromBranchID"`
	ToBranchID   *string             `json:"toBranchID"`
	Reason       string              `json:"reason"`
}

// StockQueryParams filter stock entries.
type StockQueryParams struct {
	BranchID  string `form:"branch_id"`
	ProductID string `form:"product_id"`
}

// VerifyStockParams identify the entry to reconcile against the ledger.
type VerifyStockParams struct {
	BranchID  string `form:"branch_id" binding:"required"`
	ProductID string `form:"product_id" binding:"required"`
}

// ListMovementsParams are the query parameters for the movement log.
type ListMovementsParams struct {
	BranchID  string              `form:"branch_id"`
	ProductID string              `form:"product_id"`
	Type      domain.MovementType `form:"type"`
	Limit     int                 `form:"limit"`
	NextToken *string             `form:"next_token"`
}

// ListMovementsResponse is a page of movements.
type ListMovementsResponse struct {
	Movements []domain.InventoryMovement `json:"movements"`
	NextToken *string                    `json:"nextToken,omitempty"`
}
