package dto

import (
	"time"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one cart line. Lines with a productID take their
// snapshot from the catalog; UnitPrice overrides the catalog price.
type SaleItemRequest struct {
	ProductID       *string          `json:"productID"`
	Name            string           `json:"name"`
	Type            domain.ItemType  `json:"type" binding:"omitempty,oneof=PRODUCT SERVICE SHIPPING"`
	Quantity        int              `json:"quantity" binding:"required,gt=0,lte=2147483647"`
	UnitPrice       *decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal  `json:"discountPercent"`
	ProfessionalID  *string          `json:"professionalID"`
}

// DeliveryRequest carries dispatch data for channel DELIVERY.
type DeliveryRequest struct {
	Customer     domain.CustomerSnapshot `json:"customer"`
	ShippingCost decimal.Decimal         `json:"shippingCost"`
	ScheduledAt  *time.Time              `json:"scheduledAt"`
}

// CreateSaleRequest is the checkout payload.
type CreateSaleRequest struct {
	BranchID      string               `json:"branchID" binding:"required"`
	Items         []SaleItemRequest    `json:"items" binding:"dive"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required"`
	CustomerID    *string              `json:"customerID"`
	CashSessionID *string              `json:"cashSessionID"`
	Channel       domain.SaleChannel   `json:"channel" binding:"omitempty,oneof=STORE DELIVERY"`
	Delivery      *DeliveryRequest     `json:"delivery"`
	CashReceived  *decimal.Decimal     `json:"cashReceived"`
}

// VoidSaleRequest is the void payload.
type VoidSaleRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListSalesParams are the query parameters for listing sales. From and To
// are inclusive days; Mine restricts the listing to the caller's own sales.
type ListSalesParams struct {
	BranchID      string            `form:"branch_id"`
	CashSessionID string            `form:"cash_session_id"`
	Status        domain.SaleStatus `form:"status" binding:"omitempty,oneof=COMPLETED VOIDED"`
	CreatedBy     string            `form:"created_by"`
	Mine          bool              `form:"mine"`
	From          time.Time         `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To            time.Time         `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit         int               `form:"limit"`
	NextToken     *string           `form:"next_token"`
}

// ListSalesResponse is a page of sales.
type ListSalesResponse struct {
	Sales     []domain.Sale `json:"sales"`
	NextToken *string       `json:"nextToken,omitempty"`
}
