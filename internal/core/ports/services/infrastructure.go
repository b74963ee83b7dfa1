package services

import (
	"context"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
)

// BranchLocker provides short-lived mutual exclusion per branch.
type BranchLocker interface {
	// Lock blocks until the branch lock is held or ctx ends. Failing to obtain
	// the lock in time returns ErrConcurrencyConflict.
	Lock(ctx context.Context, branchID string) (unlock func(), err error)
}

// DeliveryPublisher announces delivery orders to the delivery subsystem.
type DeliveryPublisher interface {
	PublishDeliveryCreated(ctx context.Context, event domain.DeliveryCreatedEvent) error
}

// PhoneNormalizer formats customer phone numbers for dispatch.
type PhoneNormalizer interface {
	Normalize(phone string) (string, error)
}
