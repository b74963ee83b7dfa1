package repositories

import (
	"context"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
)

// ProductReader supplies catalog snapshots.
type ProductReader interface {
	// FindProductsByIDs retrieves products keyed by id. Unknown ids are absent.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)
}
