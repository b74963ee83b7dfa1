package repositories

import (
	"context"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
)

// ActivityWriter appends audit entries.
type ActivityWriter interface {
	InsertActivity(ctx context.Context, entry domain.ActivityLog) error
}

// ActivityReader lists audit entries newest first.
type ActivityReader interface {
	ListActivity(ctx context.Context, branchID string, limit int) ([]domain.ActivityLog, error)
}
