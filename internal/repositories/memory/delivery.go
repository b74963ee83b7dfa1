package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
)

type deliveryReader struct{ s *Store }

var _ portsrepo.DeliveryReader = deliveryReader{}

func (r deliveryReader) FindDeliveryBySaleID(_ context.Context, saleID string) (*domain.DeliveryOrder, error) {
	var order domain.DeliveryOrder
	var ok bool
	r.s.read(func(st *state) { order, ok = st.deliveries[saleID] })
	if !ok {
		return nil, fmt.Errorf("%w: delivery order for sale %s", apperrors.ErrNotFound, saleID)
	}
	return &order, nil
}

type deliveryTx struct{ st *state }

var _ portsrepo.DeliveryTxRepository = deliveryTx{}

func (t deliveryTx) InsertDeliveryOrder(_ context.Context, order domain.DeliveryOrder) error {
	if _, exists := t.st.deliveries[order.SaleID]; exists {
		return fmt.Errorf("%w: delivery order for sale %s", apperrors.ErrDuplicate, order.SaleID)
	}
	if _, ok := t.st.sales[order.SaleID]; !ok {
		return fmt.Errorf("%w: sale %s does not exist", apperrors.ErrValidation, order.SaleID)
	}
	t.st.deliveries[order.SaleID] = order
	return nil
}

func (t deliveryTx) FindDeliveryBySaleIDForUpdate(_ context.Context, saleID string) (*domain.DeliveryOrder, error) {
	order, ok := t.st.deliveries[saleID]
	if !ok {
		return nil, fmt.Errorf("%w: delivery order for sale %s", apperrors.ErrNotFound, saleID)
	}
	return &order, nil
}

func (t deliveryTx) UpdateDeliveryStatus(_ context.Context, order domain.DeliveryOrder) error {
	current, ok := t.st.deliveries[order.SaleID]
	if !ok || current.DeliveryID != order.DeliveryID {
		return fmt.Errorf("%w: delivery %s", apperrors.ErrNotFound, order.DeliveryID)
	}
	current.Status = order.Status
	current.UpdatedAt = order.UpdatedAt
	t.st.deliveries[order.SaleID] = current
	return nil
}

type activityReader struct{ s *Store }

var _ portsrepo.ActivityReader = activityReader{}

func (r activityReader) ListActivity(_ context.Context, branchID string, limit int) ([]domain.ActivityLog, error) {
	entries := make([]domain.ActivityLog, 0)
	r.s.read(func(st *state) {
		for _, e := range st.activity {
			if e.BranchID == branchID {
				entries = append(entries, e)
			}
		}
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type activityTx struct{ st *state }

var _ portsrepo.ActivityWriter = activityTx{}

func (t activityTx) InsertActivity(_ context.Context, entry domain.ActivityLog) error {
	t.st.activity = append(t.st.activity, entry)
	return nil
}

type productReader struct{ s *Store }

var _ portsrepo.ProductReader = productReader{}

func (r productReader) FindProductsByIDs(_ context.Context, productIDs []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(productIDs))
	r.s.read(func(st *state) {
		for _, id := range productIDs {
			if p, ok := st.products[id]; ok {
				out[id] = p
			}
		}
	})
	return out, nil
}
