package services

import (
	"context"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/SscSPs/vetpos_backend/internal/dto"
)

// SaleReaderSvc defines read operations for sale data
type SaleReaderSvc interface {
	GetSale(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, params dto.ListSalesParams, userID string) (*dto.ListSalesResponse, error)
}

// SaleWriterSvc defines write operations for sale data
type SaleWriterSvc interface {
	// CreateSale checks out a cart: stock, sale and cash accumulator in one transaction.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error)

	// VoidSale cancels a completed sale and credits its stock back.
	VoidSale(ctx context.Context, saleID string, req dto.VoidSaleRequest, userID string) (*domain.Sale, error)
}

// DeliveryLinkSvc is the callback surface for the delivery subsystem.
type DeliveryLinkSvc interface {
	// CancelDelivery cancels the dispatch record and voids its sale.
	CancelDelivery(ctx context.Context, saleID string, req dto.CancelDeliveryRequest, userID string) (*domain.Sale, error)
}

// SaleSvcFacade combines all sale-related service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
	DeliveryLinkSvc
}
