package mapping

import (
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/SscSPs/vetpos_backend/internal/models"
)

// ToModelMovement converts a domain InventoryMovement to a model InventoryMovement
func ToModelMovement(d domain.InventoryMovement) models.InventoryMovement {
	return models.InventoryMovement{
		MovementID:      d.MovementID,
		MovementType:    string(d.Type),
		ProductID:       d.ProductID,
		Quantity:        d.Quantity,
		FromBranchID:    toNullString(d.FromBranchID),
		ToBranchID:      toNullString(d.ToBranchID),
		Reason:          d.Reason,
		ReferenceSaleID: toNullString(d.ReferenceSaleID),
		TransferID:      toNullString(d.TransferID),
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainMovement converts a model InventoryMovement to a domain InventoryMovement
func ToDomainMovement(m models.InventoryMovement) domain.InventoryMovement {
	return domain.InventoryMovement{
		MovementID:      m.MovementID,
		Type:            domain.MovementType(m.MovementType),
		ProductID:       m.ProductID,
		Quantity:        m.Quantity,
		FromBranchID:    fromNullString(m.FromBranchID),
		ToBranchID:      fromNullString(m.ToBranchID),
		Reason:          m.Reason,
		ReferenceSaleID: fromNullString(m.ReferenceSaleID),
		TransferID:      fromNullString(m.TransferID),
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}
