package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
)

// InventoryRepository implements persistence.InventoryRepository
type InventoryRepository struct {
	store *Store
}

func (r *InventoryRepository) LockAvailable(ctx context.Context, limit int, now time.Time) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	err := r.store.view(ctx, func(st *state) error {
		for _, item := range st.inventory {
			if item.IsAvailable(now) {
				out = append(out, &item)
			}
		}
		return nil
	})
	slices.SortFunc(out, oldestFirst)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r *InventoryRepository) MarkClaimed(ctx context.Context, ids []uint64, accountID uint64, now time.Time) (int64, error) {
	var claimed int64
	err := r.store.update(ctx, func(st *state) error {
		for _, id := range ids {
			item, ok := st.inventory[id]
			if !ok || item.Claim(accountID, now) != nil {
				continue
			}
			st.inventory[id] = item
			claimed++
		}
		return nil
	})
	return claimed, err
}

func (r *InventoryRepository) InsertBatch(ctx context.Context, values []string, expiresAt *time.Time, now time.Time) (int64, error) {
	var inserted int64
	err := r.store.update(ctx, func(st *state) error {
		existing := make(map[string]struct{}, len(st.inventory))
		for _, item := range st.inventory {
			existing[item.Value] = struct{}{}
		}
		for _, v := range values {
			if _, dup := existing[v]; dup {
				continue
			}
			existing[v] = struct{}{}
			id := st.id()
			st.inventory[id] = entity.InventoryItem{
				ID:        id,
				Value:     v,
				ExpiresAt: expiresAt,
				CreatedAt: now,
			}
			inserted++
		}
		return nil
	})
	return inserted, err
}

func (r *InventoryRepository) ListClaimedBy(ctx context.Context, accountID uint64, limit int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	err := r.store.view(ctx, func(st *state) error {
		for _, item := range st.inventory {
			if item.ClaimedBy != nil && *item.ClaimedBy == accountID {
				out = append(out, &item)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.InventoryItem) int {
		if c := b.ClaimedAt.Compare(*a.ClaimedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func oldestFirst(a, b *entity.InventoryItem) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
