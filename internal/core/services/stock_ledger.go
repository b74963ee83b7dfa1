package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
)

// postMovements locks every entry the movements touch, checks availability
// for all of them before writing anything, then saves the entries and
// appends the movement rows. It must run inside uow's transaction.
func postMovements(ctx context.Context, uow portsrepo.UnitOfWork, movements []domain.InventoryMovement, now time.Time) (*domain.MovementResult, error) {
	if len(movements) == 0 {
		return &domain.MovementResult{Movements: []domain.InventoryMovement{}, Entries: []domain.StockEntry{}}, nil
	}
	keys := touchedKeys(movements)

	stockRepo := uow.Stock()
	locked, err := stockRepo.LockStockEntries(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to lock stock entries: %w", err)
	}

	working := make(map[domain.StockKey]domain.StockEntry, len(keys))
	for k, e := range locked {
		working[k] = e
	}
	if err := domain.ApplyDeltas(working, movements, now); err != nil {
		return nil, err
	}

	entries := make([]domain.StockEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, working[k])
	}
	if err := stockRepo.SaveStockEntries(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to save stock entries: %w", err)
	}
	if err := stockRepo.InsertMovements(ctx, movements); err != nil {
		return nil, fmt.Errorf("failed to insert movements: %w", err)
	}

	for i := range entries {
		entries[i].Version++
	}
	return &domain.MovementResult{Movements: movements, Entries: entries}, nil
}

func touchedKeys(movements []domain.InventoryMovement) []domain.StockKey {
	seen := make(map[domain.StockKey]struct{})
	keys := make([]domain.StockKey, 0, len(movements))
	for _, m := range movements {
		for _, k := range m.Touches() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	domain.SortStockKeys(keys)
	return keys
}
