package mapping

import (
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/SscSPs/vetpos_backend/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale. Items are mapped separately.
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:         d.SaleID,
		BranchID:       d.BranchID,
		CashSessionID:  d.CashSessionID,
		Subtotal:       d.Subtotal,
		DiscountAmount: d.DiscountAmount,
		Total:          d.Total,
		PaymentMethod:  string(d.PaymentMethod),
		Status:         string(d.Status),
		Channel:        string(d.Channel),
		CustomerID:     toNullString(d.CustomerID),
		VoidedAt:       toNullTime(d.VoidedAt),
		VoidReason:     toNullString(d.VoidReason),
		VoidedBy:       toNullString(d.VoidedBy),
		CashReceived:   toNullDecimal(d.CashReceived),
		CashChange:     toNullDecimal(d.CashChange),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale and its item rows to a domain Sale
func ToDomainSale(m models.Sale, items []models.SaleItem) domain.Sale {
	return domain.Sale{
		SaleID:         m.SaleID,
		BranchID:       m.BranchID,
		CashSessionID:  m.CashSessionID,
		Items:          ToDomainSaleItems(items),
		Subtotal:       m.Subtotal,
		DiscountAmount: m.DiscountAmount,
		Total:          m.Total,
		PaymentMethod:  domain.PaymentMethod(m.PaymentMethod),
		Status:         domain.SaleStatus(m.Status),
		Channel:        domain.SaleChannel(m.Channel),
		CustomerID:     fromNullString(m.CustomerID),
		VoidedAt:       fromNullTime(m.VoidedAt),
		VoidReason:     fromNullString(m.VoidReason),
		VoidedBy:       fromNullString(m.VoidedBy),
		CashReceived:   fromNullDecimal(m.CashReceived),
		CashChange:     fromNullDecimal(m.CashChange),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSaleItems numbers the lines of sale in cart order.
func ToModelSaleItems(sale domain.Sale) []models.SaleItem {
	items := make([]models.SaleItem, len(sale.Items))
	for i, d := range sale.Items {
		items[i] = models.SaleItem{
			SaleID:          sale.SaleID,
			LineNo:          i + 1,
			ProductID:       toNullString(d.ProductID),
			Name:            d.Name,
			ItemType:        string(d.Type),
			Category:        d.Category,
			Quantity:        d.Quantity,
			UnitPrice:       d.UnitPrice,
			DiscountPercent: d.DiscountPercent,
			Subtotal:        d.Subtotal,
			DiscountAmount:  d.DiscountAmount,
			Total:           d.Total,
			ProfessionalID:  toNullString(d.ProfessionalID),
			TracksStock:     d.TracksStock,
		}
	}
	return items
}

// ToDomainSaleItems converts item rows, which must already be in line order.
func ToDomainSaleItems(items []models.SaleItem) []domain.SaleItem {
	out := make([]domain.SaleItem, len(items))
	for i, m := range items {
		out[i] = domain.SaleItem{
			ProductID:       fromNullString(m.ProductID),
			Name:            m.Name,
			Type:            domain.ItemType(m.ItemType),
			Category:        m.Category,
			Quantity:        m.Quantity,
			UnitPrice:       m.UnitPrice,
			DiscountPercent: m.DiscountPercent,
			Subtotal:        m.Subtotal,
			DiscountAmount:  m.DiscountAmount,
			Total:           m.Total,
			ProfessionalID:  fromNullString(m.ProfessionalID),
			TracksStock:     m.TracksStock,
		}
	}
	return out
}

// ToDomainPaymentTotals converts aggregate rows.
func ToDomainPaymentTotals(rows []models.PaymentTotal) []domain.PaymentTotal {
	out := make([]domain.PaymentTotal, len(rows))
	for i, m := range rows {
		out[i] = domain.PaymentTotal{
			Status: domain.SaleStatus(m.Status),
			Method: domain.PaymentMethod(m.PaymentMethod),
			Total:  m.Total,
			Count:  int(m.Count),
		}
	}
	return out
}
