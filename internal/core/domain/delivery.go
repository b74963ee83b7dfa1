package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DeliveryStatus is owned by the delivery subsystem once the order exists.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryAssigned  DeliveryStatus = "ASSIGNED"
	DeliveryInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryFailed    DeliveryStatus = "FAILED"
	DeliveryCancelled DeliveryStatus = "CANCELLED"
)

// CustomerSnapshot is the recipient data copied onto the order.
type CustomerSnapshot struct {
	Name    string            `json:"name"`
	Phone   string            `json:"phone,omitempty"`
	Address string            `json:"address,omitempty"`
	Extra   map[string]string `json:"extra,omitempty"`
}

// DeliveryOrder links a delivery-channel sale to its dispatch record.
type DeliveryOrder struct {
	DeliveryID       string           `json:"deliveryID"`
	SaleID           string           `json:"saleID"`
	BranchID         string           `json:"branchID"`
	CustomerSnapshot CustomerSnapshot `json:"customerSnapshot"`
	ShippingCost     decimal.Decimal  `json:"shippingCost"`
	ScheduledAt      *time.Time       `json:"scheduledAt,omitempty"`
	Status           DeliveryStatus   `json:"status"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Cancel marks the order cancelled. Delivered and cancelled orders are final.
func (d *DeliveryOrder) Cancel(at time.Time) error {
	if d.Status == DeliveryDelivered || d.Status == DeliveryCancelled {
		return fmt.Errorf("%w: delivery %s is %s", apperrors.ErrConflict, d.DeliveryID, d.Status)
	}
	d.Status = DeliveryCancelled
	d.UpdatedAt = at
	return nil
}

// DeliveryCreatedEvent is published once a delivery-channel sale commits.
type DeliveryCreatedEvent struct {
	DeliveryID       string           `json:"deliveryID"`
	SaleID           string           `json:"saleID"`
	BranchID         string           `json:"branchID"`
	CustomerSnapshot CustomerSnapshot `json:"customerSnapshot"`
	ShippingCost     decimal.Decimal  `json:"shippingCost"`
	ScheduledAt      *time.Time       `json:"scheduledAt,omitempty"`
	OccurredAt       time.Time        `json:"occurredAt"`
}

// CreatedEvent builds the event for d.
func (d DeliveryOrder) CreatedEvent() DeliveryCreatedEvent {
	return DeliveryCreatedEvent{
		DeliveryID:       d.DeliveryID,
		SaleID:           d.SaleID,
		BranchID:         d.BranchID,
		CustomerSnapshot: d.CustomerSnapshot,
		ShippingCost:     d.ShippingCost,
		ScheduledAt:      d.ScheduledAt,
		OccurredAt:       d.CreatedAt,
	}
}
