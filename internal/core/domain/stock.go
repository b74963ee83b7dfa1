package domain

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
)

// MaxQuantity bounds a single line or movement to the INTEGER columns.
const MaxQuantity = math.MaxInt32

// MovementType enumerates the kinds of stock change.
type MovementType string

const (
	MovementIn       MovementType = "IN"
	MovementOut      MovementType = "OUT"
	MovementTransfer MovementType = "TRANSFER"
	MovementSale     MovementType = "SALE"
	MovementVoidSale MovementType = "VOID_SALE"
)

// Valid reports whether t is a known movement type.
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementTransfer, MovementSale, MovementVoidSale:
		return true
	}
	return false
}

// Manual reports whether t may be posted directly, outside the sale flow.
func (t MovementType) Manual() bool {
	return t == MovementIn || t == MovementOut || t == MovementTransfer
}

// StockKey identifies a StockEntry.
type StockKey struct {
	BranchID  string `json:"branchID"`
	ProductID string `json:"productID"`
}

func (k StockKey) String() string {
	return k.BranchID + "/" + k.ProductID
}

// SortStockKeys orders keys by branch then product. Row locks are always
// taken in this order.
func SortStockKeys(keys []StockKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].BranchID != keys[j].BranchID {
			return keys[i].BranchID < keys[j].BranchID
		}
		return keys[i].ProductID < keys[j].ProductID
	})
}

// StockEntry is the quantity projection for one branch/product pair.
// Version is 0 for an entry that has never been persisted.
type StockEntry struct {
	BranchID  string    `json:"branchID"`
	ProductID string    `json:"productID"`
	Quantity  int       `json:"quantity"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Key returns the entry's key.
func (e StockEntry) Key() StockKey {
	return StockKey{BranchID: e.BranchID, ProductID: e.ProductID}
}

// InventoryMovement is an immutable stock change fact.
type InventoryMovement struct {
	MovementID      string       `json:"movementID"`
	Type            MovementType `json:"type"`
	ProductID       string       `json:"productID"`
	Quantity        int          `json:"quantity"`
	FromBranchID    *string      `json:"fromBranchID,omitempty"`
	ToBranchID      *string      `json:"toBranchID,omitempty"`
	Reason          string       `json:"reason"`
	ReferenceSaleID *string      `json:"referenceSaleID,omitempty"`
	TransferID      *string      `json:"transferID,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	CreatedBy       string       `json:"createdBy"`
}

// Delta is the signed effect of m on the given branch.
func (m InventoryMovement) Delta(branchID string) int {
	delta := 0
	if m.ToBranchID != nil && *m.ToBranchID == branchID {
		delta += m.Quantity
	}
	if m.FromBranchID != nil && *m.FromBranchID == branchID {
		delta -= m.Quantity
	}
	return delta
}

// Touches returns the keys whose entries m changes.
func (m InventoryMovement) Touches() []StockKey {
	keys := make([]StockKey, 0, 2)
	if m.FromBranchID != nil {
		keys = append(keys, StockKey{BranchID: *m.FromBranchID, ProductID: m.ProductID})
	}
	if m.ToBranchID != nil {
		keys = append(keys, StockKey{BranchID: *m.ToBranchID, ProductID: m.ProductID})
	}
	return keys
}

// Validate checks the shape rules for a movement of its type.
func (m InventoryMovement) Validate() error {
	if !m.Type.Valid() {
		return fmt.Errorf("%w: unknown movement type %q", apperrors.ErrValidation, m.Type)
	}
	if m.ProductID == "" {
		return fmt.Errorf("%w: product is required", apperrors.ErrValidation)
	}
	if m.Quantity <= 0 || m.Quantity > MaxQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d", apperrors.ErrValidation, MaxQuantity)
	}
	hasFrom := m.FromBranchID != nil && *m.FromBranchID != ""
	hasTo := m.ToBranchID != nil && *m.ToBranchID != ""
	switch m.Type {
	case MovementIn, MovementVoidSale:
		if !hasTo {
			return fmt.Errorf("%w: %s requires a destination branch", apperrors.ErrValidation, m.Type)
		}
	case MovementOut, MovementSale:
		if !hasFrom {
			return fmt.Errorf("%w: %s requires a source branch", apperrors.ErrValidation, m.Type)
		}
	case MovementTransfer:
		if !hasFrom || !hasTo {
			return fmt.Errorf("%w: TRANSFER requires source and destination branches", apperrors.ErrValidation)
		}
		if *m.FromBranchID == *m.ToBranchID {
			return fmt.Errorf("%w: TRANSFER source and destination must differ", apperrors.ErrValidation)
		}
	}
	return nil
}

// Legs splits a movement into the rows that get persisted. A TRANSFER
// becomes an OUT leg at the source and an IN leg at the destination that
// share a transfer id; everything else is a single row carrying only the
// side its type uses.
func (m InventoryMovement) Legs(newID func() string) []InventoryMovement {
	switch m.Type {
	case MovementTransfer:
		transferID := newID()
		out := m
		out.MovementID = newID()
		out.ToBranchID = nil
		out.TransferID = &transferID
		in := m
		in.MovementID = newID()
		in.FromBranchID = nil
		in.TransferID = &transferID
		return []InventoryMovement{out, in}
	case MovementIn, MovementVoidSale:
		m.FromBranchID = nil
	case MovementOut, MovementSale:
		m.ToBranchID = nil
	}
	if m.MovementID == "" {
		m.MovementID = newID()
	}
	return []InventoryMovement{m}
}

// MovementResult is what applying a movement produced.
type MovementResult struct {
	Movements []InventoryMovement `json:"movements"`
	Entries   []StockEntry        `json:"entries"`
}

// StockVerification compares a stored entry with the movement ledger.
type StockVerification struct {
	BranchID   string `json:"branchID"`
	ProductID  string `json:"productID"`
	Stored     int    `json:"stored"`
	FromLedger int    `json:"fromLedger"`
	Consistent bool   `json:"consistent"`
}

// LowStockEntry is an entry at or below its product's alert threshold.
type LowStockEntry struct {
	StockEntry
	ProductName string `json:"productName"`
	Threshold   int    `json:"threshold"`
}

// ApplyDeltas mutates entries in place with the signed effect of movs.
// Debits that would go below zero fail with an InsufficientStockError,
// except VOID_SALE which is always a credit. entries is keyed by StockKey
// and missing keys are created at zero.
func ApplyDeltas(entries map[StockKey]StockEntry, movs []InventoryMovement, at time.Time) error {
	type change struct {
		delta int
		debit int
	}
	changes := make(map[StockKey]*change)
	order := make([]StockKey, 0)
	for _, m := range movs {
		for _, key := range m.Touches() {
			c, ok := changes[key]
			if !ok {
				c = &change{}
				changes[key] = c
				order = append(order, key)
			}
			d := m.Delta(key.BranchID)
			c.delta += d
			if d < 0 {
				c.debit -= d
			}
		}
	}
	SortStockKeys(order)
	for _, key := range order {
		c := changes[key]
		entry, ok := entries[key]
		if !ok {
			entry = StockEntry{BranchID: key.BranchID, ProductID: key.ProductID}
		}
		if entry.Quantity+c.delta < 0 {
			return apperrors.NewInsufficientStock(key.BranchID, key.ProductID, c.debit, entry.Quantity)
		}
		if entry.Quantity+c.delta > MaxQuantity {
			return fmt.Errorf("%w: stock of %s would exceed %d", apperrors.ErrValidation, key.String(), MaxQuantity)
		}
	}
	for _, key := range order {
		entry, ok := entries[key]
		if !ok {
			entry = StockEntry{BranchID: key.BranchID, ProductID: key.ProductID}
		}
		entry.Quantity += changes[key].delta
		entry.UpdatedAt = at
		entries[key] = entry
	}
	return nil
}
