package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

// AccountRepository implements persistence.AccountRepository
type AccountRepository struct {
	store *Store
}

func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	var out *entity.Account
	err := r.store.view(ctx, func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return errs.ErrAccountNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

// GetByIDForUpdate needs no row lock here; the unit already excludes other writers
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var out *entity.Account
	err := r.store.view(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if a.Username == username {
				out = &a
				return nil
			}
		}
		return errs.ErrAccountNotFound
	})
	return out, err
}

func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	if _, err := entity.ParseRole(string(account.Role)); err != nil {
		return err
	}
	return r.store.update(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if a.Username == account.Username || strings.EqualFold(a.Email, account.Email) {
				return fmt.Errorf("%w: username or email already registered", errs.ErrDuplicateValue)
			}
		}
		account.ID = st.id()
		st.accounts[account.ID] = *account
		return nil
	})
}

func (r *AccountRepository) DebitBalance(ctx context.Context, id uint64, amount int64) (int64, error) {
	var balance int64
	err := r.store.update(ctx, func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return errs.ErrAccountNotFound
		}
		if err := a.Debit(amount); err != nil {
			return err
		}
		st.accounts[id] = a
		balance = a.RequestBalance()
		return nil
	})
	return balance, err
}

func (r *AccountRepository) AddBalance(ctx context.Context, id uint64, delta int64) (int64, error) {
	var balance int64
	err := r.store.update(ctx, func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return errs.ErrAccountNotFound
		}
		if err := a.Adjust(delta); err != nil {
			return err
		}
		st.accounts[id] = a
		balance = a.RequestBalance()
		return nil
	})
	return balance, err
}

func (r *AccountRepository) UpdateExpiry(ctx context.Context, id uint64, expiry *time.Time, expired bool) error {
	return r.store.update(ctx, func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return errs.ErrAccountNotFound
		}
		a.ExpiryTime = expiry
		a.IsExpiredFlag = expired
		st.accounts[id] = a
		return nil
	})
}

func (r *AccountRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	return r.store.update(ctx, func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return errs.ErrAccountNotFound
		}
		a.IsActive = active
		st.accounts[id] = a
		return nil
	})
}

func (r *AccountRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Account, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []*entity.Account
	err := r.store.view(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if query == "" ||
				strings.Contains(strings.ToLower(a.Username), query) ||
				strings.Contains(strings.ToLower(a.Email), query) {
				out = append(out, &a)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.Account) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}
