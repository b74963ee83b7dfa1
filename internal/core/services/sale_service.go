package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/dto"
)

const saleMovementReason = "POS sale"

// saleService implements the sale ledger.
type saleService struct {
	BaseService
	saleRepo     portsrepo.SaleReader
	sessionRepo  portsrepo.CashSessionReader
	productRepo  portsrepo.ProductReader
	publisher    portssvc.DeliveryPublisher
	phoneNumbers portssvc.PhoneNormalizer
}

// SaleServiceOption is a functional option for configuring the sale service
type SaleServiceOption func(*saleService)

// WithDeliveryPublisher sets where delivery-created events go.
func WithDeliveryPublisher(p portssvc.DeliveryPublisher) SaleServiceOption {
	return func(s *saleService) {
		s.publisher = p
	}
}

// WithPhoneNormalizer sets how recipient phones are normalized.
func WithPhoneNormalizer(n portssvc.PhoneNormalizer) SaleServiceOption {
	return func(s *saleService) {
		s.phoneNumbers = n
	}
}

// NewSaleService creates a new SaleService with the provided options
func NewSaleService(base BaseService, saleRepo portsrepo.SaleReader, sessionRepo portsrepo.CashSessionReader, productRepo portsrepo.ProductReader, options ...SaleServiceOption) portssvc.SaleSvcFacade {
	svc := &saleService{
		BaseService: base,
		saleRepo:    saleRepo,
		sessionRepo: sessionRepo,
		productRepo: productRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// CreateSale checks out a cart. Stock debits, the sale row, the session
// accumulator and the optional delivery order commit together.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (created *domain.Sale, err error) {
	ctx, span := startSpan(ctx, "SaleService.CreateSale")
	defer func() { endSpan(span, err) }()
	logger := s.GetLogger(ctx).With(slog.String("branch_id", req.BranchID))

	if err := domain.CheckCheckout(len(req.Items), req.PaymentMethod, req.CustomerID); err != nil {
		return nil, err
	}
	if req.BranchID == "" {
		return nil, fmt.Errorf("%w: branch is required", apperrors.ErrValidation)
	}
	channel := req.Channel
	if channel == "" {
		channel = domain.ChannelStore
	}
	if channel != domain.ChannelStore && channel != domain.ChannelDelivery {
		return nil, fmt.Errorf("%w: unknown channel %q", apperrors.ErrValidation, channel)
	}

	// Fail fast without a session; the check is repeated under lock below.
	if _, err := s.sessionRepo.FindOpenSession(ctx, req.BranchID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoOpenSession
		}
		return nil, fmt.Errorf("failed to look up cash session: %w", err)
	}

	items, err := s.buildItems(ctx, req.BranchID, req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sale := domain.Sale{
		SaleID:        uuid.NewString(),
		BranchID:      req.BranchID,
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.SaleCompleted,
		Channel:       channel,
		CustomerID:    req.CustomerID,
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	sale.Price()
	if err := sale.Tender(req.CashReceived); err != nil {
		return nil, err
	}

	var delivery *domain.DeliveryOrder
	if channel == domain.ChannelDelivery {
		delivery, err = s.buildDelivery(sale, req.Delivery, now)
		if err != nil {
			return nil, err
		}
	}

	movements := saleMovements(sale, userID, now)

	unlock, err := s.lockBranch(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	err = s.runInTx(ctx, "CreateSale", func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if err := uow.LockBranch(ctx, sale.BranchID); err != nil {
			return err
		}
		session, err := uow.CashSessions().FindOpenSessionForUpdate(ctx, sale.BranchID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrNoOpenSession
			}
			return fmt.Errorf("failed to lock cash session: %w", err)
		}
		if req.CashSessionID != nil && *req.CashSessionID != "" && *req.CashSessionID != session.SessionID {
			return fmt.Errorf("%w: cash session %s is not the open session of branch %s", apperrors.ErrValidation, *req.CashSessionID, sale.BranchID)
		}
		sale.CashSessionID = session.SessionID

		if _, err := postMovements(ctx, uow, movements, now); err != nil {
			return err
		}
		if err := uow.Sales().InsertSale(ctx, sale); err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}
		if err := uow.CashSessions().AddSales(ctx, session.SessionID, sale.PaymentMethod, sale.Total); err != nil {
			return fmt.Errorf("failed to accumulate sale: %w", err)
		}
		if delivery != nil {
			if err := uow.Deliveries().InsertDeliveryOrder(ctx, *delivery); err != nil {
				return fmt.Errorf("failed to insert delivery order: %w", err)
			}
		}
		entry := newActivity(sale.BranchID, userID, domain.ActivitySale, sale.SaleID,
			fmt.Sprintf("Sale of %d items for %s via %s", len(sale.Items), sale.Total.String(), sale.PaymentMethod),
			map[string]any{"total": sale.Total.String(), "paymentMethod": string(sale.PaymentMethod), "channel": string(sale.Channel)}, now)
		return uow.Activity().InsertActivity(ctx, entry)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientStock) || errors.Is(err, apperrors.ErrNoOpenSession) {
			logger.Info("Sale rejected", slog.String("error", err.Error()))
		} else {
			logger.Error("Failed to create sale", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("cash_session_id", sale.CashSessionID),
		slog.String("total", sale.Total.String()))

	if delivery != nil {
		s.publishDelivery(ctx, *delivery)
	}
	return &sale, nil
}

// buildItems snapshots catalog data onto the cart lines and prices them.
func (s *saleService) buildItems(ctx context.Context, branchID string, lines []dto.SaleItemRequest) ([]domain.SaleItem, error) {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.ProductID != nil && *line.ProductID != "" {
			ids = append(ids, *line.ProductID)
		}
	}
	products := map[string]domain.Product{}
	if len(ids) > 0 {
		var err error
		products, err = s.productRepo.FindProductsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load products: %w", err)
		}
	}

	items := make([]domain.SaleItem, 0, len(lines))
	for _, line := range lines {
		item := domain.SaleItem{
			Name:            strings.TrimSpace(line.Name),
			Type:            line.Type,
			Quantity:        line.Quantity,
			DiscountPercent: line.DiscountPercent,
			ProfessionalID:  line.ProfessionalID,
		}
		if line.ProductID != nil && *line.ProductID != "" {
			p, ok := products[*line.ProductID]
			if !ok {
				return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, *line.ProductID)
			}
			if !p.IsActive {
				return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, p.ProductID)
			}
			productID := p.ProductID
			item.ProductID = &productID
			item.Name = p.Name
			item.Category = p.Category
			item.Type = domain.ItemProduct
			if p.Kind == domain.KindService {
				item.Type = domain.ItemService
			}
			item.TracksStock = p.CarriesStock()
			item.UnitPrice = p.PriceFor(branchID)
			if line.UnitPrice != nil {
				item.UnitPrice = *line.UnitPrice
			}
		} else {
			if item.Type == "" {
				item.Type = domain.ItemService
			}
			if item.Type == domain.ItemProduct {
				return nil, fmt.Errorf("%w: product lines require a product id", apperrors.ErrValidation)
			}
			if item.Name == "" {
				return nil, fmt.Errorf("%w: ad hoc lines require a name", apperrors.ErrValidation)
			}
			if line.UnitPrice == nil {
				return nil, fmt.Errorf("%w: ad hoc line %q requires a unit price", apperrors.ErrValidation, item.Name)
			}
			item.UnitPrice = *line.UnitPrice
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *saleService) buildDelivery(sale domain.Sale, req *dto.DeliveryRequest, now time.Time) (*domain.DeliveryOrder, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: delivery sales require delivery details", apperrors.ErrValidation)
	}
	customer := req.Customer
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return nil, fmt.Errorf("%w: delivery recipient name is required", apperrors.ErrValidation)
	}
	if req.ShippingCost.IsNegative() {
		return nil, fmt.Errorf("%w: shipping cost cannot be negative", apperrors.ErrValidation)
	}
	if customer.Phone != "" && s.phoneNumbers != nil {
		phone, err := s.phoneNumbers.Normalize(customer.Phone)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid recipient phone: %v", apperrors.ErrValidation, err)
		}
		customer.Phone = phone
	}
	return &domain.DeliveryOrder{
		DeliveryID:       uuid.NewString(),
		SaleID:           sale.SaleID,
		BranchID:         sale.BranchID,
		CustomerSnapshot: customer,
		ShippingCost:     req.ShippingCost,
		ScheduledAt:      req.ScheduledAt,
		Status:           domain.DeliveryPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// publishDelivery runs after commit. The order row is already durable, so a
// failed publish is logged and not returned.
func (s *saleService) publishDelivery(ctx context.Context, order domain.DeliveryOrder) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishDeliveryCreated(ctx, order.CreatedEvent()); err != nil {
		s.LogError(ctx, err, "Failed to publish delivery event",
			slog.String("sale_id", order.SaleID),
			slog.String("delivery_id", order.DeliveryID))
	}
}

func saleMovements(sale domain.Sale, userID string, now time.Time) []domain.InventoryMovement {
	lines := sale.StockLines()
	movements := make([]domain.InventoryMovement, 0, len(lines))
	for _, item := range lines {
		branchID := sale.BranchID
		saleID := sale.SaleID
		movements = append(movements, domain.InventoryMovement{
			MovementID:      uuid.NewString(),
			Type:            domain.MovementSale,
			ProductID:       *item.ProductID,
			Quantity:        item.Quantity,
			FromBranchID:    &branchID,
			Reason:          saleMovementReason,
			ReferenceSaleID: &saleID,
			CreatedAt:       now,
			CreatedBy:       userID,
		})
	}
	return movements
}

func voidMovements(sale domain.Sale, userID string, now time.Time) []domain.InventoryMovement {
	lines := sale.StockLines()
	movements := make([]domain.InventoryMovement, 0, len(lines))
	for _, item := range lines {
		branchID := sale.BranchID
		saleID := sale.SaleID
		movements = append(movements, domain.InventoryMovement{
			MovementID:      uuid.NewString(),
			Type:            domain.MovementVoidSale,
			ProductID:       *item.ProductID,
			Quantity:        item.Quantity,
			ToBranchID:      &branchID,
			Reason:          fmt.Sprintf("Void of sale %s", sale.SaleID),
			ReferenceSaleID: &saleID,
			CreatedAt:       now,
			CreatedBy:       userID,
		})
	}
	return movements
}

// voidInTx locks the sale, credits its stock back and marks it VOIDED.
// Session accumulators are left as sold.
func (s *saleService) voidInTx(ctx context.Context, uow portsrepo.UnitOfWork, saleID, reason, userID string, now time.Time) (*domain.Sale, error) {
	sale, err := uow.Sales().FindSaleByIDForUpdate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.Void(reason, userID, now); err != nil {
		return nil, err
	}
	if _, err := postMovements(ctx, uow, voidMovements(*sale, userID, now), now); err != nil {
		return nil, err
	}
	if err := uow.Sales().MarkSaleVoided(ctx, *sale); err != nil {
		return nil, fmt.Errorf("failed to mark sale voided: %w", err)
	}
	entry := newActivity(sale.BranchID, userID, domain.ActivitySaleVoid, sale.SaleID,
		fmt.Sprintf("Voided sale for %s: %s", sale.Total.String(), reason),
		map[string]any{"total": sale.Total.String(), "paymentMethod": string(sale.PaymentMethod), "reason": reason}, now)
	if err := uow.Activity().InsertActivity(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}
	return sale, nil
}

// VoidSale cancels a completed sale.
func (s *saleService) VoidSale(ctx context.Context, saleID string, req dto.VoidSaleRequest, userID string) (voided *domain.Sale, err error) {
	ctx, span := startSpan(ctx, "SaleService.VoidSale")
	defer func() { endSpan(span, err) }()

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: void reason is required", apperrors.ErrValidation)
	}
	now := time.Now().UTC()
	err = s.runInTx(ctx, "VoidSale", func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		sale, err := s.voidInTx(ctx, uow, saleID, reason, userID, now)
		if err != nil {
			return err
		}
		voided = sale
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrSaleNotVoidable) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to void sale", slog.String("sale_id", saleID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Sale voided", slog.String("sale_id", saleID), slog.String("branch_id", voided.BranchID))
	return voided, nil
}

// CancelDelivery cancels the dispatch record and voids its sale in one transaction.
func (s *saleService) CancelDelivery(ctx context.Context, saleID string, req dto.CancelDeliveryRequest, userID string) (voided *domain.Sale, err error) {
	ctx, span := startSpan(ctx, "SaleService.CancelDelivery")
	defer func() { endSpan(span, err) }()

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", apperrors.ErrValidation)
	}
	now := time.Now().UTC()
	err = s.runInTx(ctx, "CancelDelivery", func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		order, err := uow.Deliveries().FindDeliveryBySaleIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if err := order.Cancel(now); err != nil {
			return err
		}
		if err := uow.Deliveries().UpdateDeliveryStatus(ctx, *order); err != nil {
			return fmt.Errorf("failed to update delivery: %w", err)
		}
		sale, err := s.voidInTx(ctx, uow, saleID, "Delivery cancelled: "+reason, userID, now)
		if err != nil {
			return err
		}
		entry := newActivity(sale.BranchID, userID, domain.ActivityDeliveryCancel, order.DeliveryID,
			fmt.Sprintf("Cancelled delivery of sale %s: %s", sale.SaleID, reason), nil, now)
		if err := uow.Activity().InsertActivity(ctx, entry); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}
		voided = sale
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel delivery", slog.String("sale_id", saleID))
		return nil, err
	}
	s.LogInfo(ctx, "Delivery cancelled", slog.String("sale_id", saleID))
	return voided, nil
}

// GetSale retrieves a sale.
func (s *saleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to fetch sale", slog.String("sale_id", saleID))
		}
		return nil, err
	}
	return sale, nil
}

// ListSales pages through sales. With Mine set the creator filter is the
// caller, overriding CreatedBy.
func (s *saleService) ListSales(ctx context.Context, params dto.ListSalesParams, userID string) (*dto.ListSalesResponse, error) {
	if !params.From.IsZero() && !params.To.IsZero() && params.To.Before(params.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", apperrors.ErrValidation)
	}
	limit := clampLimit(params.Limit, 20, 100)
	filter := portsrepo.SaleFilter{
		BranchID:      params.BranchID,
		CashSessionID: params.CashSessionID,
		Status:        params.Status,
		CreatedBy:     params.CreatedBy,
		From:          params.From,
	}
	if params.Mine {
		filter.CreatedBy = userID
	}
	if !params.To.IsZero() {
		filter.To = params.To.Add(24 * time.Hour)
	}
	sales, next, err := s.saleRepo.ListSales(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales")
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	return &dto.ListSalesResponse{Sales: sales, NextToken: next}, nil
}
