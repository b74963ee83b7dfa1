package domain

import "github.com/shopspring/decimal"

// ProductKind distinguishes physical goods from services.
type ProductKind string

const (
	KindProduct ProductKind = "PRODUCT"
	KindService ProductKind = "SERVICE"
)

// Product is a read-only catalog snapshot.
type Product struct {
	ProductID           string                     `json:"productID"`
	Name                string                     `json:"name"`
	Kind                ProductKind                `json:"kind"`
	Category            string                     `json:"category,omitempty"`
	TracksStock         bool                       `json:"tracksStock"`
	SalePrice           decimal.Decimal            `json:"salePrice"`
	PurchasePrice       decimal.Decimal            `json:"purchasePrice"`
	TaxPercent          decimal.Decimal            `json:"taxPercent"`
	StockAlertThreshold int                        `json:"stockAlertThreshold"`
	IsActive            bool                       `json:"isActive"`
	BranchPrices        map[string]decimal.Decimal `json:"branchPrices,omitempty"`
}

// CarriesStock reports whether selling this product moves inventory.
// Services never do; products only when their category tracks stock.
func (p Product) CarriesStock() bool {
	return p.Kind == KindProduct && p.TracksStock
}

// PriceFor returns the branch override when present, else the catalog sale price.
func (p Product) PriceFor(branchID string) decimal.Decimal {
	if price, ok := p.BranchPrices[branchID]; ok {
		return price
	}
	return p.SalePrice
}
