package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
	"github.com/SscSPs/vetpos_backend/internal/dto"
)

type activityService struct {
	BaseService
	activityRepo portsrepo.ActivityReader
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo portsrepo.ActivityReader) portssvc.ActivitySvc {
	return &activityService{activityRepo: activityRepo}
}

var _ portssvc.ActivitySvc = (*activityService)(nil)

func (s *activityService) ListActivity(ctx context.Context, params dto.ListActivityParams) ([]domain.ActivityLog, error) {
	entries, err := s.activityRepo.ListActivity(ctx, params.BranchID, clampLimit(params.Limit, 50, 200))
	if err != nil {
		s.LogError(ctx, err, "Failed to list activity")
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	if entries == nil {
		entries = []domain.ActivityLog{}
	}
	return entries, nil
}
