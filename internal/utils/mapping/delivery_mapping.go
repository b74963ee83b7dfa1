package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/SscSPs/vetpos_backend/internal/models"
)

// ToModelDeliveryOrder converts a domain DeliveryOrder to a model DeliveryOrder
func ToModelDeliveryOrder(d domain.DeliveryOrder) (models.DeliveryOrder, error) {
	snapshot, err := json.Marshal(d.CustomerSnapshot)
	if err != nil {
		return models.DeliveryOrder{}, fmt.Errorf("failed to encode customer snapshot: %w", err)
	}
	return models.DeliveryOrder{
		DeliveryID:       d.DeliveryID,
		SaleID:           d.SaleID,
		BranchID:         d.BranchID,
		CustomerSnapshot: snapshot,
		ShippingCost:     d.ShippingCost,
		ScheduledAt:      toNullTime(d.ScheduledAt),
		Status:           string(d.Status),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}, nil
}

// ToDomainDeliveryOrder converts a model DeliveryOrder to a domain DeliveryOrder
func ToDomainDeliveryOrder(m models.DeliveryOrder) (domain.DeliveryOrder, error) {
	var snapshot domain.CustomerSnapshot
	if len(m.CustomerSnapshot) > 0 {
		if err := json.Unmarshal(m.CustomerSnapshot, &snapshot); err != nil {
			return domain.DeliveryOrder{}, fmt.Errorf("failed to decode customer snapshot of delivery %s: %w", m.DeliveryID, err)
		}
	}
	return domain.DeliveryOrder{
		DeliveryID:       m.DeliveryID,
		SaleID:           m.SaleID,
		BranchID:         m.BranchID,
		CustomerSnapshot: snapshot,
		ShippingCost:     m.ShippingCost,
		ScheduledAt:      fromNullTime(m.ScheduledAt),
		Status:           domain.DeliveryStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}

// ToModelActivityLog converts a domain ActivityLog to a model ActivityLog
func ToModelActivityLog(d domain.ActivityLog) (models.ActivityLog, error) {
	metadata := d.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return models.ActivityLog{}, fmt.Errorf("failed to encode activity metadata: %w", err)
	}
	return models.ActivityLog{
		ActivityID:  d.ActivityID,
		BranchID:    d.BranchID,
		UserID:      d.UserID,
		Action:      string(d.Action),
		EntityID:    d.EntityID,
		Description: d.Description,
		Metadata:    b,
		CreatedAt:   d.CreatedAt,
	}, nil
}

// ToDomainActivityLog converts a model ActivityLog to a domain ActivityLog
func ToDomainActivityLog(m models.ActivityLog) (domain.ActivityLog, error) {
	d := domain.ActivityLog{
		ActivityID:  m.ActivityID,
		BranchID:    m.BranchID,
		UserID:      m.UserID,
		Action:      domain.ActivityAction(m.Action),
		EntityID:    m.EntityID,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &d.Metadata); err != nil {
			return d, fmt.Errorf("failed to decode activity metadata: %w", err)
		}
	}
	return d, nil
}
