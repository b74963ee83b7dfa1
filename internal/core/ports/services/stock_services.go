package services

import (
	"context"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/SscSPs/vetpos_backend/internal/dto"
)

// StockReaderSvc defines read operations for stock data
type StockReaderSvc interface {
	// GetStock lists stock entries for a branch and/or product.
	GetStock(ctx context.Context, params dto.StockQueryParams) ([]domain.StockEntry, error)

	// ListMovements pages through the movement log.
	ListMovements(ctx context.Context, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)

	// VerifyStock compares the stored entry with the signed movement sum.
	VerifyStock(ctx context.Context, branchID, productID string) (*domain.StockVerification, error)

	// ListLowStock returns entries at or below their product's alert threshold.
	ListLowStock(ctx context.Context, branchID string) ([]domain.LowStockEntry, error)
}

// StockWriterSvc defines write operations for stock data
type StockWriterSvc interface {
	// ApplyMovement posts a manual IN, OUT or TRANSFER movement.
	ApplyMovement(ctx context.Context, req dto.CreateMovementRequest, userID string) (*domain.MovementResult, error)
}

// StockSvcFacade combines all stock-related service interfaces
type StockSvcFacade interface {
	StockReaderSvc
	StockWriterSvc
}
