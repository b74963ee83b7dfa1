package domain_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string { return &s }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestInventoryMovement_Validate(t *testing.T) {
	tests := []struct {
		name     string
		movement domain.InventoryMovement
		wantErr  bool
	}{
		{
			name:     "in with destination",
			movement: domain.InventoryMovement{Type: domain.MovementIn, ProductID: "p1", Quantity: 3, ToBranchID: stringPtr("b1")},
		},
		{
			name:     "in without destination",
			movement: domain.InventoryMovement{Type: domain.MovementIn, ProductID: "p1", Quantity: 3},
			wantErr:  true,
		},
		{
			name:     "out without source",
			movement: domain.InventoryMovement{Type: domain.MovementOut, ProductID: "p1", Quantity: 3, ToBranchID: stringPtr("b1")},
			wantErr:  true,
		},
		{
			name:     "zero quantity",
			movement: domain.InventoryMovement{Type: domain.MovementOut, ProductID: "p1", Quantity: 0, FromBranchID: stringPtr("b1")},
			wantErr:  true,
		},
		{
			name:     "transfer to same branch",
			movement: domain.InventoryMovement{Type: domain.MovementTransfer, ProductID: "p1", Quantity: 1, FromBranchID: stringPtr("b1"), ToBranchID: stringPtr("b1")},
			wantErr:  true,
		},
		{
			name:     "transfer between branches",
			movement: domain.InventoryMovement{Type: domain.MovementTransfer, ProductID: "p1", Quantity: 1, FromBranchID: stringPtr("b1"), ToBranchID: stringPtr("b2")},
		},
		{
			name:     "unknown type",
			movement: domain.InventoryMovement{Type: "ADJUST", ProductID: "p1", Quantity: 1, ToBranchID: stringPtr("b1")},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.movement.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInventoryMovement_TransferLegs(t *testing.T) {
	m := domain.InventoryMovement{Type: domain.MovementTransfer, ProductID: "p1", Quantity: 4, FromBranchID: stringPtr("a"), ToBranchID: stringPtr("b")}

	legs := m.Legs(sequentialIDs())

	require.Len(t, legs, 2)
	assert.Equal(t, "a", *legs[0].FromBranchID)
	assert.Nil(t, legs[0].ToBranchID)
	assert.Equal(t, "b", *legs[1].ToBranchID)
	assert.Nil(t, legs[1].FromBranchID)
	require.NotNil(t, legs[0].TransferID)
	assert.Equal(t, *legs[0].TransferID, *legs[1].TransferID)
	assert.NotEqual(t, legs[0].MovementID, legs[1].MovementID)
	assert.Equal(t, -4, legs[0].Delta("a"))
	assert.Equal(t, 4, legs[1].Delta("b"))
}

func TestApplyDeltas_RejectsQuantityAboveColumnRange(t *testing.T) {
	key := domain.StockKey{BranchID: "b1", ProductID: "p1"}
	entries := map[domain.StockKey]domain.StockEntry{
		key: {BranchID: "b1", ProductID: "p1", Quantity: domain.MaxQuantity - 1},
	}
	in := domain.InventoryMovement{Type: domain.MovementIn, ProductID: "p1", Quantity: 2, ToBranchID: stringPtr("b1")}

	err := domain.ApplyDeltas(entries, []domain.InventoryMovement{in}, time.Now())

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, domain.MaxQuantity-1, entries[key].Quantity)

	huge := domain.InventoryMovement{Type: domain.MovementIn, ProductID: "p1", Quantity: domain.MaxQuantity + 1, ToBranchID: stringPtr("b1")}
	assert.ErrorIs(t, huge.Validate(), apperrors.ErrValidation)
}

func TestApplyDeltas_InsufficientLeavesEntriesUntouched(t *testing.T) {
	key := domain.StockKey{BranchID: "b1", ProductID: "p1"}
	entries := map[domain.StockKey]domain.StockEntry{
		key: {BranchID: "b1", ProductID: "p1", Quantity: 2, Version: 1},
	}
	sale := domain.InventoryMovement{Type: domain.MovementSale, ProductID: "p1", Quantity: 3, FromBranchID: stringPtr("b1")}

	err := domain.ApplyDeltas(entries, []domain.InventoryMovement{sale}, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	var stockErr *apperrors.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 2, entries[key].Quantity)
}

func TestApplyDeltas_AggregatesLinesOfSameProduct(t *testing.T) {
	key := domain.StockKey{BranchID: "b1", ProductID: "p1"}
	entries := map[domain.StockKey]domain.StockEntry{key: {BranchID: "b1", ProductID: "p1", Quantity: 5}}
	movs := []domain.InventoryMovement{
		{Type: domain.MovementSale, ProductID: "p1", Quantity: 3, FromBranchID: stringPtr("b1")},
		{Type: domain.MovementSale, ProductID: "p1", Quantity: 3, FromBranchID: stringPtr("b1")},
	}

	err := domain.ApplyDeltas(entries, movs, time.Now())

	var stockErr *apperrors.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, entries[key].Quantity)
}

func TestApplyDeltas_VoidSaleCreditsMissingEntry(t *testing.T) {
	entries := map[domain.StockKey]domain.StockEntry{}
	void := domain.InventoryMovement{Type: domain.MovementVoidSale, ProductID: "p1", Quantity: 2, ToBranchID: stringPtr("b1")}

	require.NoError(t, domain.ApplyDeltas(entries, []domain.InventoryMovement{void}, time.Now()))

	assert.Equal(t, 2, entries[domain.StockKey{BranchID: "b1", ProductID: "p1"}].Quantity)
}

// Random sequences of movements keep every entry equal to the signed sum of
// the movements that were accepted.
func TestApplyDeltas_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	branches := []string{"a", "b", "c"}
	products := []string{"p1", "p2"}
	types := []domain.MovementType{domain.MovementIn, domain.MovementOut, domain.MovementTransfer, domain.MovementSale, domain.MovementVoidSale}
	entries := map[domain.StockKey]domain.StockEntry{}
	var accepted []domain.InventoryMovement
	ids := sequentialIDs()

	for i := 0; i < 500; i++ {
		m := domain.InventoryMovement{
			Type:      types[rng.Intn(len(types))],
			ProductID: products[rng.Intn(len(products))],
			Quantity:  1 + rng.Intn(5),
		}
		from := branches[rng.Intn(len(branches))]
		to := branches[rng.Intn(len(branches))]
		m.FromBranchID = &from
		m.ToBranchID = &to
		if m.Validate() != nil {
			continue
		}
		legs := m.Legs(ids)
		before := snapshot(entries)
		if err := domain.ApplyDeltas(entries, legs, time.Now()); err != nil {
			require.ErrorIs(t, err, apperrors.ErrInsufficientStock)
			assert.Equal(t, before, snapshot(entries))
			continue
		}
		accepted = append(accepted, legs...)
	}

	for _, b := range branches {
		for _, p := range products {
			sum := 0
			for _, m := range accepted {
				if m.ProductID == p {
					sum += m.Delta(b)
				}
			}
			key := domain.StockKey{BranchID: b, ProductID: p}
			assert.Equal(t, sum, entries[key].Quantity, key.String())
			assert.GreaterOrEqual(t, entries[key].Quantity, 0)
		}
	}
}

func snapshot(entries map[domain.StockKey]domain.StockEntry) map[domain.StockKey]int {
	out := make(map[domain.StockKey]int, len(entries))
	for k, e := range entries {
		out[k] = e.Quantity
	}
	return out
}
