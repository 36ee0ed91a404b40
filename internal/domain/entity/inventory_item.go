package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

// MaxInventoryValueSize is the longest token value the store accepts
const MaxInventoryValueSize = 255

// InventoryItem is a pre-provisioned opaque token claimable exactly once
type InventoryItem struct {
	ID        uint64
	Value     string
	IsClaimed bool
	ClaimedBy *uint64
	ClaimedAt *time.Time
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// IsAvailable reports whether the item can still be claimed at now
func (i *InventoryItem) IsAvailable(now time.Time) bool {
	if i.IsClaimed {
		return false
	}
	return i.ExpiresAt == nil || i.ExpiresAt.After(now)
}

// Claim assigns the item to an account. A claimed item is never reassigned.
func (i *InventoryItem) Claim(accountID uint64, now time.Time) error {
	if i.IsClaimed {
		return errs.ErrConcurrentModification
	}
	i.IsClaimed = true
	i.ClaimedBy = &accountID
	i.ClaimedAt = &now
	return nil
}
