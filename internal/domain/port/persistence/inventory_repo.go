package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
)

// InventoryRepository persists claimable tokens
type InventoryRepository interface {
	// LockAvailable selects up to limit unclaimed, unexpired items oldest first
	// (created_at, then id) and locks them for the current transaction.
	// Rows locked by concurrent transactions are skipped.
	LockAvailable(ctx context.Context, limit int, now time.Time) ([]*entity.InventoryItem, error)

	// MarkClaimed claims the given items for accountID, only where they are still unclaimed.
	// It returns the number of rows that flipped.
	MarkClaimed(ctx context.Context, ids []uint64, accountID uint64, now time.Time) (int64, error)

	// InsertBatch inserts unclaimed items, silently skipping values that already exist.
	// It returns the number of rows actually inserted.
	InsertBatch(ctx context.Context, values []string, expiresAt *time.Time, now time.Time) (int64, error)

	// ListClaimedBy returns the newest items claimed by accountID
	ListClaimedBy(ctx context.Context, accountID uint64, limit int) ([]*entity.InventoryItem, error)
}
