package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/core/services"
	"github.com/SscSPs/vetpos_backend/internal/dto"
	"github.com/SscSPs/vetpos_backend/internal/platform/lock"
	"github.com/SscSPs/vetpos_backend/internal/platform/phone"
	"github.com/SscSPs/vetpos_backend/internal/repositories/memory"
)

const (
	branchA   = "branch-a"
	branchB   = "branch-b"
	kibbleID  = "kibble"
	vaccineID = "vaccine"
	cashierID = "cashier-1"
)

// --- Mock DeliveryPublisher ---
type MockDeliveryPublisher struct {
	mock.Mock
}

var _ portssvc.DeliveryPublisher = (*MockDeliveryPublisher)(nil)

func (m *MockDeliveryPublisher) PublishDeliveryCreated(ctx context.Context, event domain.DeliveryCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// posSuite wires the real services over the in-memory store.
type posSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	svc       *portssvc.ServiceContainer
	publisher *MockDeliveryPublisher
}

func (s *posSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.store.PutProduct(domain.Product{
		ProductID:           kibbleID,
		Name:                "Dog kibble",
		Kind:                domain.KindProduct,
		Category:            "Food",
		TracksStock:         true,
		SalePrice:           decimal.NewFromInt(1000),
		StockAlertThreshold: 3,
		IsActive:            true,
	})
	s.store.PutProduct(domain.Product{
		ProductID: vaccineID,
		Name:      "Rabies vaccine",
		Kind:      domain.KindService,
		SalePrice: decimal.NewFromInt(15000),
		IsActive:  true,
	})
	s.publisher = new(MockDeliveryPublisher)
	s.svc = services.NewServiceContainer(nil, s.store.Provider(), services.Dependencies{
		Locker:    lock.NewLocal(time.Second),
		Publisher: s.publisher,
		Phones:    phone.NewNormalizer("US"),
	})
}

func ptr[T any](v T) *T { return &v }

func (s *posSuite) receive(branchID, productID string, qty int) {
	_, err := s.svc.Stock.ApplyMovement(s.ctx, dto.CreateMovementRequest{
		Type:       domain.MovementIn,
		ProductID:  productID,
		Quantity:   qty,
		ToBranchID: ptr(branchID),
	}, cashierID)
	s.Require().NoError(err)
}

func (s *posSuite) open(branchID string, denominations domain.Denominations) *domain.CashSession {
	session, err := s.svc.CashSession.OpenSession(s.ctx, dto.OpenSessionRequest{BranchID: branchID, OpeningDenominations: denominations}, cashierID)
	s.Require().NoError(err)
	return session
}

func (s *posSuite) stockOf(branchID, productID string) int {
	entries, err := s.svc.Stock.GetStock(s.ctx, dto.StockQueryParams{BranchID: branchID, ProductID: productID})
	s.Require().NoError(err)
	if len(entries) == 0 {
		return 0
	}
	return entries[0].Quantity
}

func cashSale(branchID, productID string, qty int) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		BranchID:      branchID,
		Items:         []dto.SaleItemRequest{{ProductID: ptr(productID), Quantity: qty}},
		PaymentMethod: domain.PaymentCash,
	}
}
