package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a sale was paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentDebit    PaymentMethod = "DEBIT"
	PaymentCredit   PaymentMethod = "CREDIT"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentDebt     PaymentMethod = "DEBT"
)

// PaymentMethods lists every method in reporting order.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentDebit, PaymentCredit, PaymentTransfer, PaymentDebt}

// Valid reports whether p is a known payment method.
func (p PaymentMethod) Valid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

// SaleStatus is the lifecycle state of a sale.
type SaleStatus string

const (
	SaleCompleted SaleStatus = "COMPLETED"
	SaleVoided    SaleStatus = "VOIDED"
)

// SaleChannel is where the sale originated.
type SaleChannel string

const (
	ChannelStore    SaleChannel = "STORE"
	ChannelDelivery SaleChannel = "DELIVERY"
)

// ItemType classifies a sale line.
type ItemType string

const (
	ItemProduct  ItemType = "PRODUCT"
	ItemService  ItemType = "SERVICE"
	ItemShipping ItemType = "SHIPPING"
)

var hundred = decimal.NewFromInt(100)

// SaleItem is a line of a sale with its pricing snapshot.
type SaleItem struct {
	ProductID       *string         `json:"productID,omitempty"`
	Name            string          `json:"name"`
	Type            ItemType        `json:"type"`
	Category        string          `json:"category,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	Total           decimal.Decimal `json:"total"`
	ProfessionalID  *string         `json:"professionalID,omitempty"`
	TracksStock     bool            `json:"tracksStock"`
}

// LineAmounts computes the rounded gross, discount and net for one line.
// Each figure is rounded to a whole currency unit before summing.
func LineAmounts(unitPrice decimal.Decimal, quantity int, discountPercent decimal.Decimal) (gross, discount, total decimal.Decimal) {
	raw := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	gross = raw.Round(0)
	discount = raw.Mul(discountPercent).Div(hundred).Round(0)
	total = gross.Sub(discount)
	return gross, discount, total
}

// Price fills the computed fields of the item.
func (i *SaleItem) Price() {
	i.Subtotal, i.DiscountAmount, i.Total = LineAmounts(i.UnitPrice, i.Quantity, i.DiscountPercent)
}

// Validate checks the line shape, independent of the catalog.
func (i SaleItem) Validate() error {
	if i.Quantity <= 0 || i.Quantity > MaxQuantity {
		return fmt.Errorf("%w: item %q quantity must be between 1 and %d", apperrors.ErrValidation, i.Name, MaxQuantity)
	}
	if i.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: item %q unit price cannot be negative", apperrors.ErrValidation, i.Name)
	}
	if i.DiscountPercent.IsNegative() || i.DiscountPercent.GreaterThan(hundred) {
		return fmt.Errorf("%w: item %q discount must be between 0 and 100", apperrors.ErrValidation, i.Name)
	}
	switch i.Type {
	case ItemProduct, ItemService, ItemShipping:
	default:
		return fmt.Errorf("%w: unknown item type %q", apperrors.ErrValidation, i.Type)
	}
	return nil
}

// Sale is a completed or voided point-of-sale transaction.
type Sale struct {
	SaleID         string           `json:"saleID"`
	BranchID       string           `json:"branchID"`
	Items          []SaleItem       `json:"items"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	DiscountAmount decimal.Decimal  `json:"discountAmount"`
	Total          decimal.Decimal  `json:"total"`
	PaymentMethod  PaymentMethod    `json:"paymentMethod"`
	Status         SaleStatus       `json:"status"`
	Channel        SaleChannel      `json:"channel"`
	CustomerID     *string          `json:"customerID,omitempty"`
	CashSessionID  string           `json:"cashSessionID"`
	CashReceived   *decimal.Decimal `json:"cashReceived,omitempty"`
	CashChange     *decimal.Decimal `json:"cashChange,omitempty"`
	VoidedAt       *time.Time       `json:"voidedAt,omitempty"`
	VoidReason     *string          `json:"voidReason,omitempty"`
	VoidedBy       *string          `json:"voidedBy,omitempty"`
	AuditFields
}

// Totals recomputes subtotal, discount and total from the items.
func (s Sale) Totals() (subtotal, discount, total decimal.Decimal) {
	for _, item := range s.Items {
		gross, disc, net := LineAmounts(item.UnitPrice, item.Quantity, item.DiscountPercent)
		subtotal = subtotal.Add(gross)
		discount = discount.Add(disc)
		total = total.Add(net)
	}
	return subtotal, discount, total
}

// Price fills item and sale totals.
func (s *Sale) Price() {
	for i := range s.Items {
		s.Items[i].Price()
	}
	s.Subtotal, s.DiscountAmount, s.Total = s.Totals()
}

// StockLines returns the items that moved stock.
func (s Sale) StockLines() []SaleItem {
	lines := make([]SaleItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.TracksStock && item.ProductID != nil {
			lines = append(lines, item)
		}
	}
	return lines
}

// CheckCheckout applies the catalog-independent checkout guards in order.
func CheckCheckout(items int, method PaymentMethod, customerID *string) error {
	if items == 0 {
		return apperrors.ErrEmptyCart
	}
	if !method.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, method)
	}
	if method == PaymentDebt && (customerID == nil || *customerID == "") {
		return apperrors.ErrDebtRequiresCustomer
	}
	return nil
}

// Tender records the cash handed over for a CASH sale and the change due.
// A nil amount leaves the sale untendered. Call after Price.
func (s *Sale) Tender(received *decimal.Decimal) error {
	if received == nil {
		s.CashReceived, s.CashChange = nil, nil
		return nil
	}
	if s.PaymentMethod != PaymentCash {
		return fmt.Errorf("%w: cash received only applies to %s sales", apperrors.ErrValidation, PaymentCash)
	}
	if received.LessThan(s.Total) {
		return fmt.Errorf("%w: cash received %s is less than total %s", apperrors.ErrValidation, received.String(), s.Total.String())
	}
	amount := *received
	change := amount.Sub(s.Total)
	s.CashReceived = &amount
	s.CashChange = &change
	return nil
}

// Void moves a completed sale to VOIDED.
func (s *Sale) Void(reason, userID string, at time.Time) error {
	if s.Status != SaleCompleted {
		return fmt.Errorf("%w: sale %s is %s", apperrors.ErrSaleNotVoidable, s.SaleID, s.Status)
	}
	s.Status = SaleVoided
	s.VoidedAt = &at
	s.VoidReason = &reason
	s.VoidedBy = &userID
	s.Touch(userID, at)
	return nil
}
