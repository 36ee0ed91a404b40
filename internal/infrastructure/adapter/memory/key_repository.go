package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

// KeyRepository implements persistence.KeyRepository
type KeyRepository struct {
	store *Store
}

func (r *KeyRepository) GetByValueForUpdate(ctx context.Context, value string) (*entity.RedeemableKey, error) {
	var out *entity.RedeemableKey
	err := r.store.view(ctx, func(st *state) error {
		for _, k := range st.keys {
			if k.Value == value {
				out = &k
				return nil
			}
		}
		return errs.ErrKeyNotFound
	})
	return out, err
}

func (r *KeyRepository) MarkUsed(ctx context.Context, keyID, accountID uint64, now time.Time) error {
	return r.store.update(ctx, func(st *state) error {
		k, ok := st.keys[keyID]
		if !ok {
			return errs.ErrKeyNotFound
		}
		if k.IsUsed {
			return errs.ErrKeyAlreadyUsed
		}
		k.IsUsed = true
		k.UsedBy = &accountID
		k.UsedAt = &now
		st.keys[keyID] = k
		return nil
	})
}

func (r *KeyRepository) MarkExpired(ctx context.Context, keyID uint64) error {
	return r.store.update(ctx, func(st *state) error {
		k, ok := st.keys[keyID]
		if !ok {
			return errs.ErrKeyNotFound
		}
		k.IsExpiredFlag = true
		st.keys[keyID] = k
		return nil
	})
}

func (r *KeyRepository) Create(ctx context.Context, key *entity.RedeemableKey) error {
	return r.store.update(ctx, func(st *state) error {
		for _, k := range st.keys {
			if k.Value == key.Value {
				return fmt.Errorf("%w: key value", errs.ErrDuplicateValue)
			}
		}
		key.ID = st.id()
		st.keys[key.ID] = *key
		return nil
	})
}
