package memory

import (
	"time"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DemoBranchID is the branch the demo catalog is stocked in.
const DemoBranchID = "branch-main"

// NewSeeded returns a store with a small vet clinic catalog and opening
// stock for DemoBranchID.
func NewSeeded() *Store {
	s := NewStore()
	now := time.Now().UTC()
	products := []struct {
		product domain.Product
		stock   int
	}{
		{domain.Product{ProductID: "prod-kibble-15kg", Name: "Adult dog kibble 15kg", Kind: domain.KindProduct, Category: "Food", TracksStock: true, SalePrice: decimal.NewFromInt(42990), PurchasePrice: decimal.NewFromInt(31000), TaxPercent: decimal.NewFromInt(19), StockAlertThreshold: 5, IsActive: true}, 20},
		{domain.Product{ProductID: "prod-cat-litter", Name: "Clumping cat litter 10kg", Kind: domain.KindProduct, Category: "Hygiene", TracksStock: true, SalePrice: decimal.NewFromInt(12990), PurchasePrice: decimal.NewFromInt(8200), TaxPercent: decimal.NewFromInt(19), StockAlertThreshold: 8, IsActive: true}, 30},
		{domain.Product{ProductID: "prod-antiparasitic", Name: "Antiparasitic pipette", Kind: domain.KindProduct, Category: "Pharmacy", TracksStock: true, SalePrice: decimal.NewFromInt(9990), PurchasePrice: decimal.NewFromInt(6100), TaxPercent: decimal.NewFromInt(19), StockAlertThreshold: 10, IsActive: true}, 12},
		{domain.Product{ProductID: "svc-consultation", Name: "General consultation", Kind: domain.KindService, Category: "Clinic", SalePrice: decimal.NewFromInt(25000), TaxPercent: decimal.NewFromInt(19), IsActive: true}, 0},
		{domain.Product{ProductID: "svc-vaccine", Name: "Rabies vaccine", Kind: domain.KindService, Category: "Clinic", SalePrice: decimal.NewFromInt(18000), TaxPercent: decimal.NewFromInt(19), IsActive: true}, 0},
	}

	branch := DemoBranchID
	for _, p := range products {
		s.st.products[p.product.ProductID] = p.product
		if p.stock == 0 {
			continue
		}
		key := domain.StockKey{BranchID: branch, ProductID: p.product.ProductID}
		s.st.stock[key] = domain.StockEntry{BranchID: branch, ProductID: p.product.ProductID, Quantity: p.stock, Version: 1, UpdatedAt: now}
		s.st.movements = append(s.st.movements, domain.InventoryMovement{
			MovementID: "seed-" + p.product.ProductID,
			Type:       domain.MovementIn,
			ProductID:  p.product.ProductID,
			Quantity:   p.stock,
			ToBranchID: &branch,
			Reason:     "Opening stock",
			CreatedAt:  now,
			CreatedBy:  "system",
		})
	}
	return s
}
