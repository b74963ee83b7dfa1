package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/dto"
)

var defaultMovementReasons = map[domain.MovementType]string{
	domain.MovementIn:       "Stock receipt",
	domain.MovementOut:      "Stock write-off",
	domain.MovementTransfer: "Branch transfer",
}

// stockService implements the stock ledger.
type stockService struct {
	BaseService
	stockRepo   portsrepo.StockReader
	productRepo portsrepo.ProductReader
}

// NewStockService creates a new StockService.
func NewStockService(base BaseService, stockRepo portsrepo.StockReader, productRepo portsrepo.ProductReader) portssvc.StockSvcFacade {
	return &stockService{
		BaseService: base,
		stockRepo:   stockRepo,
		productRepo: productRepo,
	}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

// ApplyMovement posts a manual movement. SALE and VOID_SALE are reserved for
// the sale ledger.
func (s *stockService) ApplyMovement(ctx context.Context, req dto.CreateMovementRequest, userID string) (result *domain.MovementResult, err error) {
	ctx, span := startSpan(ctx, "StockService.ApplyMovement")
	defer func() { endSpan(span, err) }()

	if !req.Type.Manual() {
		return nil, fmt.Errorf("%w: movement type %q cannot be posted manually", apperrors.ErrValidation, req.Type)
	}
	now := time.Now().UTC()
	movement := domain.InventoryMovement{
		Type:         req.Type,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		FromBranchID: req.FromBranchID,
		ToBranchID:   req.ToBranchID,
		Reason:       req.Reason,
		CreatedAt:    now,
		CreatedBy:    userID,
	}
	if movement.Reason == "" {
		movement.Reason = defaultMovementReasons[req.Type]
	}
	if err := movement.Validate(); err != nil {
		return nil, err
	}
	legs := movement.Legs(uuid.NewString)

	branchID := ""
	if movement.FromBranchID != nil {
		branchID = *movement.FromBranchID
	} else if movement.ToBranchID != nil {
		branchID = *movement.ToBranchID
	}

	err = s.runInTx(ctx, "ApplyMovement", func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		posted, err := postMovements(ctx, uow, legs, now)
		if err != nil {
			return err
		}
		entry := newActivity(branchID, userID, domain.ActivityInventoryMove, legs[0].MovementID,
			fmt.Sprintf("%s of %d units of product %s", movement.Type, movement.Quantity, movement.ProductID),
			map[string]any{"type": string(movement.Type), "quantity": movement.Quantity, "reason": movement.Reason}, now)
		if err := uow.Activity().InsertActivity(ctx, entry); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}
		result = posted
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientStock) {
			s.LogInfo(ctx, "Movement rejected for insufficient stock",
				slog.String("product_id", movement.ProductID),
				slog.String("error", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to apply movement", slog.String("product_id", movement.ProductID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Movement applied",
		slog.String("type", string(movement.Type)),
		slog.String("product_id", movement.ProductID),
		slog.Int("quantity", movement.Quantity))
	return result, nil
}

// GetStock lists entries for a branch and/or product.
func (s *stockService) GetStock(ctx context.Context, params dto.StockQueryParams) ([]domain.StockEntry, error) {
	entries, err := s.stockRepo.FindStockEntries(ctx, portsrepo.StockFilter{BranchID: params.BranchID, ProductID: params.ProductID})
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch stock", slog.String("branch_id", params.BranchID))
		return nil, fmt.Errorf("failed to fetch stock: %w", err)
	}
	return entries, nil
}

// ListMovements pages through the movement log.
func (s *stockService) ListMovements(ctx context.Context, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	if params.Type != "" && !params.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown movement type %q", apperrors.ErrValidation, params.Type)
	}
	limit := clampLimit(params.Limit, 20, 100)
	filter := portsrepo.MovementFilter{BranchID: params.BranchID, ProductID: params.ProductID, Type: params.Type}
	movements, next, err := s.stockRepo.ListMovements(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements")
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return &dto.ListMovementsResponse{Movements: movements, NextToken: next}, nil
}

// VerifyStock recomputes an entry from the movement log.
func (s *stockService) VerifyStock(ctx context.Context, branchID, productID string) (*domain.StockVerification, error) {
	key := domain.StockKey{BranchID: branchID, ProductID: productID}
	entries, err := s.stockRepo.FindStockEntries(ctx, portsrepo.StockFilter{BranchID: branchID, ProductID: productID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock: %w", err)
	}
	stored := 0
	if len(entries) > 0 {
		stored = entries[0].Quantity
	}
	ledger, err := s.stockRepo.SumMovements(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to sum movements: %w", err)
	}
	verification := &domain.StockVerification{
		BranchID:   branchID,
		ProductID:  productID,
		Stored:     stored,
		FromLedger: ledger,
		Consistent: stored == ledger,
	}
	if !verification.Consistent {
		s.GetLogger(ctx).Warn("Stock entry diverges from movement ledger",
			slog.String("key", key.String()),
			slog.Int("stored", stored),
			slog.Int("ledger", ledger))
	}
	return verification, nil
}

// ListLowStock returns entries at or below their alert threshold.
func (s *stockService) ListLowStock(ctx context.Context, branchID string) ([]domain.LowStockEntry, error) {
	entries, err := s.stockRepo.FindStockEntries(ctx, portsrepo.StockFilter{BranchID: branchID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	low := make([]domain.LowStockEntry, 0)
	for _, e := range entries {
		p, ok := products[e.ProductID]
		if !ok || !p.CarriesStock() || p.StockAlertThreshold <= 0 {
			continue
		}
		if e.Quantity <= p.StockAlertThreshold {
			low = append(low, domain.LowStockEntry{StockEntry: e, ProductName: p.Name, Threshold: p.StockAlertThreshold})
		}
	}
	return low, nil
}
