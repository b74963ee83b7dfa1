package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vetpos_backend/internal/utils/pagination"
)

func copySale(s domain.Sale) domain.Sale {
	s.Items = append([]domain.SaleItem(nil), s.Items...)
	return s
}

type saleReader struct{ s *Store }

var _ portsrepo.SaleReader = saleReader{}

func (r saleReader) FindSaleByID(_ context.Context, saleID string) (*domain.Sale, error) {
	var sale domain.Sale
	var ok bool
	r.s.read(func(st *state) { sale, ok = st.sales[saleID] })
	if !ok {
		return nil, fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
	}
	sale = copySale(sale)
	return &sale, nil
}

func (r saleReader) ListSales(_ context.Context, filter portsrepo.SaleFilter, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	var matched []domain.Sale
	r.s.read(func(st *state) {
		for _, sale := range st.sales {
			if filter.BranchID != "" && sale.BranchID != filter.BranchID {
				continue
			}
			if filter.CashSessionID != "" && sale.CashSessionID != filter.CashSessionID {
				continue
			}
			if filter.Status != "" && sale.Status != filter.Status {
				continue
			}
			if filter.CreatedBy != "" && sale.CreatedBy != filter.CreatedBy {
				continue
			}
			if !filter.From.IsZero() && sale.CreatedAt.Before(filter.From) {
				continue
			}
			if !filter.To.IsZero() && !sale.CreatedAt.Before(filter.To) {
				continue
			}
			matched = append(matched, copySale(sale))
		}
	})
	sort.Slice(matched, func(i, j int) bool {
		return pagination.After(matched[j].CreatedAt, matched[j].SaleID, matched[i].CreatedAt, matched[i].SaleID)
	})
	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		start := len(matched)
		for i, s := range matched {
			if pagination.After(s.CreatedAt, s.SaleID, cursorAt, cursorID) {
				start = i
				break
			}
		}
		matched = matched[start:]
	}

	var next *string
	if len(matched) > limit {
		last := matched[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.SaleID)
		next = &token
		matched = matched[:limit]
	}
	if matched == nil {
		matched = []domain.Sale{}
	}
	return matched, next, nil
}

func (r saleReader) SessionPaymentTotals(_ context.Context, sessionID string) ([]domain.PaymentTotal, error) {
	type key struct {
		status domain.SaleStatus
		method domain.PaymentMethod
	}
	agg := make(map[key]*domain.PaymentTotal)
	r.s.read(func(st *state) {
		for _, sale := range st.sales {
			if sale.CashSessionID != sessionID {
				continue
			}
			k := key{sale.Status, sale.PaymentMethod}
			t, ok := agg[k]
			if !ok {
				t = &domain.PaymentTotal{Status: sale.Status, Method: sale.PaymentMethod}
				agg[k] = t
			}
			t.Total = t.Total.Add(sale.Total)
			t.Count++
		}
	})
	totals := make([]domain.PaymentTotal, 0, len(agg))
	for _, t := range agg {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Status != totals[j].Status {
			return totals[i].Status < totals[j].Status
		}
		return totals[i].Method < totals[j].Method
	})
	return totals, nil
}

type saleTx struct{ st *state }

var _ portsrepo.SaleTxRepository = saleTx{}

func (t saleTx) InsertSale(_ context.Context, sale domain.Sale) error {
	if _, exists := t.st.sales[sale.SaleID]; exists {
		return fmt.Errorf("%w: sale %s", apperrors.ErrDuplicate, sale.SaleID)
	}
	if _, ok := t.st.sessions[sale.CashSessionID]; !ok {
		return fmt.Errorf("%w: cash session %s does not exist", apperrors.ErrValidation, sale.CashSessionID)
	}
	t.st.sales[sale.SaleID] = copySale(sale)
	return nil
}

func (t saleTx) FindSaleByIDForUpdate(_ context.Context, saleID string) (*domain.Sale, error) {
	sale, ok := t.st.sales[saleID]
	if !ok {
		return nil, fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
	}
	sale = copySale(sale)
	return &sale, nil
}

func (t saleTx) MarkSaleVoided(_ context.Context, sale domain.Sale) error {
	current, ok := t.st.sales[sale.SaleID]
	if !ok {
		return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, sale.SaleID)
	}
	if current.Status != domain.SaleCompleted {
		return fmt.Errorf("%w: sale %s is not completed", apperrors.ErrSaleNotVoidable, sale.SaleID)
	}
	current.Status = domain.SaleVoided
	current.VoidedAt = sale.VoidedAt
	current.VoidReason = sale.VoidReason
	current.VoidedBy = sale.VoidedBy
	current.LastUpdatedAt = sale.LastUpdatedAt
	current.LastUpdatedBy = sale.LastUpdatedBy
	t.st.sales[sale.SaleID] = current
	return nil
}
