package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/vetpos_backend/internal/apperrors"
	"github.com/SscSPs/vetpos_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vetpos_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vetpos_backend/internal/utils/pagination"
)

type stockReader struct{ s *Store }

var _ portsrepo.StockReader = stockReader{}

func (r stockReader) FindStockEntries(_ context.Context, filter portsrepo.StockFilter) ([]domain.StockEntry, error) {
	entries := make([]domain.StockEntry, 0)
	r.s.read(func(st *state) {
		for _, e := range st.stock {
			if filter.BranchID != "" && e.BranchID != filter.BranchID {
				continue
			}
			if filter.ProductID != "" && e.ProductID != filter.ProductID {
				continue
			}
			entries = append(entries, e)
		}
	})
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].BranchID != entries[j].BranchID {
			return entries[i].BranchID < entries[j].BranchID
		}
		return entries[i].ProductID < entries[j].ProductID
	})
	return entries, nil
}

func (r stockReader) ListMovements(_ context.Context, filter portsrepo.MovementFilter, limit int, nextToken *string) ([]domain.InventoryMovement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	var matched []domain.InventoryMovement
	r.s.read(func(st *state) {
		for _, m := range st.movements {
			if filter.BranchID != "" && !touchesBranch(m, filter.BranchID) {
				continue
			}
			if filter.ProductID != "" && m.ProductID != filter.ProductID {
				continue
			}
			if filter.Type != "" && m.Type != filter.Type {
				continue
			}
			matched = append(matched, m)
		}
	})
	sort.Slice(matched, func(i, j int) bool {
		return pagination.After(matched[j].CreatedAt, matched[j].MovementID, matched[i].CreatedAt, matched[i].MovementID)
	})

	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		start := len(matched)
		for i, m := range matched {
			if pagination.After(m.CreatedAt, m.MovementID, cursorAt, cursorID) {
				start = i
				break
			}
		}
		matched = matched[start:]
	}

	var next *string
	if len(matched) > limit {
		last := matched[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MovementID)
		next = &token
		matched = matched[:limit]
	}
	if matched == nil {
		matched = []domain.InventoryMovement{}
	}
	return matched, next, nil
}

func (r stockReader) SumMovements(_ context.Context, key domain.StockKey) (int, error) {
	sum := 0
	r.s.read(func(st *state) {
		for _, m := range st.movements {
			if m.ProductID == key.ProductID {
				sum += m.Delta(key.BranchID)
			}
		}
	})
	return sum, nil
}

func touchesBranch(m domain.InventoryMovement, branchID string) bool {
	for _, k := range m.Touches() {
		if k.BranchID == branchID {
			return true
		}
	}
	return false
}

type stockTx struct{ st *state }

var _ portsrepo.StockTxRepository = stockTx{}

func (t stockTx) LockStockEntries(_ context.Context, keys []domain.StockKey) (map[domain.StockKey]domain.StockEntry, error) {
	out := make(map[domain.StockKey]domain.StockEntry, len(keys))
	for _, k := range keys {
		if e, ok := t.st.stock[k]; ok {
			out[k] = e
		}
	}
	return out, nil
}

func (t stockTx) SaveStockEntries(_ context.Context, entries []domain.StockEntry) error {
	for _, e := range entries {
		current, exists := t.st.stock[e.Key()]
		switch {
		case e.Version == 0 && exists:
			return fmt.Errorf("%w: stock entry %s created concurrently", apperrors.ErrConcurrencyConflict, e.Key().String())
		case e.Version != 0 && (!exists || current.Version != e.Version):
			return fmt.Errorf("%w: stock entry %s changed concurrently", apperrors.ErrConcurrencyConflict, e.Key().String())
		}
		if e.Quantity < 0 {
			return fmt.Errorf("%w: stock entry %s would go negative", apperrors.ErrValidation, e.Key().String())
		}
		e.Version++
		t.st.stock[e.Key()] = e
	}
	return nil
}

func (t stockTx) InsertMovements(_ context.Context, movements []domain.InventoryMovement) error {
	t.st.movements = append(t.st.movements, movements...)
	return nil
}
