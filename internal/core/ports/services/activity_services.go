package services

import (
	"context"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/SscSPs/vetpos_backend/internal/dto"
)

// ActivitySvc exposes the audit trail.
type ActivitySvc interface {
	ListActivity(ctx context.Context, params dto.ListActivityParams) ([]domain.ActivityLog, error)
}
