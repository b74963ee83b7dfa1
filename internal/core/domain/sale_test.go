package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineAmounts(t *testing.T) {
	tests := []struct {
		name         string
		unitPrice    string
		quantity     int
		discount     string
		wantGross    string
		wantDiscount string
		wantTotal    string
	}{
		{name: "no discount", unitPrice: "10000", quantity: 3, discount: "0", wantGross: "30000", wantDiscount: "0", wantTotal: "30000"},
		{name: "ten percent", unitPrice: "10000", quantity: 3, discount: "10", wantGross: "30000", wantDiscount: "3000", wantTotal: "27000"},
		{name: "fractional price rounds per line", unitPrice: "333.33", quantity: 3, discount: "15", wantGross: "1000", wantDiscount: "150", wantTotal: "850"},
		{name: "half rounds away from zero", unitPrice: "2.5", quantity: 1, discount: "0", wantGross: "3", wantDiscount: "0", wantTotal: "3"},
		{name: "full discount", unitPrice: "4990", quantity: 2, discount: "100", wantGross: "9980", wantDiscount: "9980", wantTotal: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gross, discount, total := domain.LineAmounts(dec(tt.unitPrice), tt.quantity, dec(tt.discount))
			assert.Equal(t, tt.wantGross, gross.String())
			assert.Equal(t, tt.wantDiscount, discount.String())
			assert.Equal(t, tt.wantTotal, total.String())
		})
	}
}

func TestSale_TotalsRoundTrip(t *testing.T) {
	sale := domain.Sale{
		Items: []domain.SaleItem{
			{Name: "Kibble", Type: domain.ItemProduct, Quantity: 2, UnitPrice: dec("12990"), DiscountPercent: dec("5")},
			{Name: "Bath", Type: domain.ItemService, Quantity: 1, UnitPrice: dec("15000"), DiscountPercent: dec("0")},
			{Name: "Collar", Type: domain.ItemProduct, Quantity: 3, UnitPrice: dec("333.33"), DiscountPercent: dec("12.5")},
		},
	}

	sale.Price()
	subtotal, discount, total := sale.Totals()

	assert.True(t, subtotal.Equal(sale.Subtotal))
	assert.True(t, discount.Equal(sale.DiscountAmount))
	assert.True(t, total.Equal(sale.Total))
	assert.True(t, sale.Subtotal.Sub(sale.DiscountAmount).Equal(sale.Total))

	itemSum := decimal.Zero
	for _, item := range sale.Items {
		itemSum = itemSum.Add(item.Total)
	}
	assert.True(t, itemSum.Equal(sale.Total))
}

func TestCheckCheckout(t *testing.T) {
	customer := "tutor-1"
	tests := []struct {
		name       string
		items      int
		method     domain.PaymentMethod
		customerID *string
		wantErr    error
	}{
		{name: "empty cart", items: 0, method: domain.PaymentCash, wantErr: apperrors.ErrEmptyCart},
		{name: "empty cart wins over debt guard", items: 0, method: domain.PaymentDebt, wantErr: apperrors.ErrEmptyCart},
		{name: "debt without customer", items: 3, method: domain.PaymentDebt, wantErr: apperrors.ErrDebtRequiresCustomer},
		{name: "debt with blank customer", items: 1, method: domain.PaymentDebt, customerID: stringPtr(""), wantErr: apperrors.ErrDebtRequiresCustomer},
		{name: "debt with customer", items: 1, method: domain.PaymentDebt, customerID: &customer},
		{name: "unknown method", items: 1, method: "BARTER", wantErr: apperrors.ErrValidation},
		{name: "cash guest", items: 1, method: domain.PaymentCash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.CheckCheckout(tt.items, tt.method, tt.customerID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaleItem_Validate(t *testing.T) {
	valid := domain.SaleItem{Name: "x", Type: domain.ItemProduct, Quantity: 1, UnitPrice: dec("10"), DiscountPercent: dec("0")}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Quantity = 0
	assert.ErrorIs(t, bad.Validate(), apperrors.ErrValidation)

	bad = valid
	bad.Quantity = domain.MaxQuantity + 1
	assert.ErrorIs(t, bad.Validate(), apperrors.ErrValidation)

	bad = valid
	bad.UnitPrice = dec("-1")
	assert.ErrorIs(t, bad.Validate(), apperrors.ErrValidation)

	bad = valid
	bad.DiscountPercent = dec("101")
	assert.ErrorIs(t, bad.Validate(), apperrors.ErrValidation)
}

func TestSale_Tender(t *testing.T) {
	sale := domain.Sale{PaymentMethod: domain.PaymentCash, Total: dec("18500")}

	require.NoError(t, sale.Tender(nil))
	assert.Nil(t, sale.CashReceived)
	assert.Nil(t, sale.CashChange)

	received := dec("20000")
	require.NoError(t, sale.Tender(&received))
	assert.Equal(t, "20000", sale.CashReceived.String())
	assert.Equal(t, "1500", sale.CashChange.String())

	exact := dec("18500")
	require.NoError(t, sale.Tender(&exact))
	assert.True(t, sale.CashChange.IsZero())

	short := dec("18499")
	assert.ErrorIs(t, sale.Tender(&short), apperrors.ErrValidation)

	card := domain.Sale{PaymentMethod: domain.PaymentDebit, Total: dec("100")}
	assert.ErrorIs(t, card.Tender(&received), apperrors.ErrValidation)
}

func TestSale_VoidIsTerminal(t *testing.T) {
	sale := domain.Sale{SaleID: "s1", Status: domain.SaleCompleted}
	now := time.Now().UTC()

	require.NoError(t, sale.Void("wrong item", "u1", now))
	assert.Equal(t, domain.SaleVoided, sale.Status)
	assert.Equal(t, "wrong item", *sale.VoidReason)
	assert.Equal(t, now, *sale.VoidedAt)

	err := sale.Void("again", "u1", now)
	assert.ErrorIs(t, err, apperrors.ErrSaleNotVoidable)
	assert.Equal(t, "wrong item", *sale.VoidReason)
}

func TestProduct_CarriesStock(t *testing.T) {
	assert.True(t, domain.Product{Kind: domain.KindProduct, TracksStock: true}.CarriesStock())
	assert.False(t, domain.Product{Kind: domain.KindProduct, TracksStock: false}.CarriesStock())
	assert.False(t, domain.Product{Kind: domain.KindService, TracksStock: true}.CarriesStock())
}

func TestProduct_PriceFor(t *testing.T) {
	p := domain.Product{SalePrice: dec("1000"), BranchPrices: map[string]decimal.Decimal{"b2": dec("900")}}
	assert.Equal(t, "1000", p.PriceFor("b1").String())
	assert.Equal(t, "900", p.PriceFor("b2").String())
}
