package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
)

// KeyRepository persists redeemable keys
type KeyRepository interface {
	// GetByValueForUpdate looks a key up by exact value and locks its row
	//
	// Possible errors:
	// - ErrKeyNotFound: If no key has the value
	GetByValueForUpdate(ctx context.Context, value string) (*entity.RedeemableKey, error)

	// MarkUsed flips is_used only while it is still false (compare-and-swap)
	//
	// Possible errors:
	// - ErrKeyAlreadyUsed: If no row flipped because the key was used in the meantime
	MarkUsed(ctx context.Context, keyID, accountID uint64, now time.Time) error

	// MarkExpired persists the lazily detected expired flag
	MarkExpired(ctx context.Context, keyID uint64) error

	// Create inserts a key and sets its ID
	//
	// Possible errors:
	// - ErrDuplicateValue: If the key value already exists
	Create(ctx context.Context, key *entity.RedeemableKey) error
}
