// Package memory is an in-process ledger store. Units of work are serialized:
// a unit works on a private copy of the committed state that replaces it on commit.
package memory

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
)

var errNoTransaction = errors.New("no transaction in context")

type txKey struct{}

type state struct {
	accounts  map[uint64]entity.Account
	inventory map[uint64]entity.InventoryItem
	keys      map[uint64]entity.RedeemableKey
	records   []entity.TransactionRecord
	dailyCode *entity.DailyCode
	nextID    uint64
}

func newState() *state {
	return &state{
		accounts:  make(map[uint64]entity.Account),
		inventory: make(map[uint64]entity.InventoryItem),
		keys:      make(map[uint64]entity.RedeemableKey),
	}
}

func (s *state) clone() *state {
	c := &state{
		accounts:  maps.Clone(s.accounts),
		inventory: maps.Clone(s.inventory),
		keys:      maps.Clone(s.keys),
		records:   slices.Clone(s.records),
		nextID:    s.nextID,
	}
	if s.dailyCode != nil {
		dc := *s.dailyCode
		c.dailyCode = &dc
	}
	return c
}

func (s *state) id() uint64 {
	s.nextID++
	return s.nextID
}

type tx struct {
	working *state
	done    bool
}

// Store holds committed state and hands out repositories
type Store struct {
	unit      chan struct{} // held from Begin until Commit or Rollback
	committed *state
	readers   chan struct{} // guards committed for standalone reads
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		unit:      make(chan struct{}, 1),
		committed: newState(),
		readers:   make(chan struct{}, 1),
	}
}

func (s *Store) acquireUnit(ctx context.Context) error {
	select {
	case s.unit <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) releaseUnit() {
	<-s.unit
}

func (s *Store) lockCommitted() func() {
	s.readers <- struct{}{}
	return func() { <-s.readers }
}

func txFrom(ctx context.Context) *tx {
	t, _ := ctx.Value(txKey{}).(*tx)
	if t == nil || t.done {
		return nil
	}
	return t
}

// view runs fn against the unit's working state, or against committed state
// when ctx carries no unit
func (s *Store) view(ctx context.Context, fn func(st *state) error) error {
	if t := txFrom(ctx); t != nil {
		return fn(t.working)
	}
	unlock := s.lockCommitted()
	defer unlock()
	return fn(s.committed)
}

// update runs fn inside the caller's unit, or as its own auto-committed unit
func (s *Store) update(ctx context.Context, fn func(st *state) error) error {
	if t := txFrom(ctx); t != nil {
		return fn(t.working)
	}
	if err := s.acquireUnit(ctx); err != nil {
		return err
	}
	defer s.releaseUnit()

	working := s.snapshot()
	if err := fn(working); err != nil {
		return err
	}
	s.publish(working)
	return nil
}

func (s *Store) snapshot() *state {
	unlock := s.lockCommitted()
	defer unlock()
	return s.committed.clone()
}

func (s *Store) publish(st *state) {
	unlock := s.lockCommitted()
	defer unlock()
	s.committed = st
}

// UnitOfWork implements persistence.UnitOfWork over a Store
type UnitOfWork struct {
	store *Store
}

// NewUnitOfWork creates a unit of work factory for store
func NewUnitOfWork(store *Store) persistence.UnitOfWork {
	return &UnitOfWork{store: store}
}

// Begin waits for any running unit to finish, then opens a new one
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if txFrom(ctx) != nil {
		return nil, errors.New("nested units of work are not supported")
	}
	if err := u.store.acquireUnit(ctx); err != nil {
		return nil, err
	}
	return context.WithValue(ctx, txKey{}, &tx{working: u.store.snapshot()}), nil
}

// Commit publishes the unit's working state
func (u *UnitOfWork) Commit(ctx context.Context) error {
	t := txFrom(ctx)
	if t == nil {
		return errNoTransaction
	}
	t.done = true
	u.store.publish(t.working)
	u.store.releaseUnit()
	return nil
}

// Rollback discards the unit's working state. Rolling back a finished unit is a no-op.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	t := txFrom(ctx)
	if t == nil {
		if _, ok := ctx.Value(txKey{}).(*tx); ok {
			return nil
		}
		return errNoTransaction
	}
	t.done = true
	u.store.releaseUnit()
	return nil
}

func (u *UnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return &AccountRepository{store: u.store}
}

func (u *UnitOfWork) GetInventoryRepository(ctx context.Context) persistence.InventoryRepository {
	return &InventoryRepository{store: u.store}
}

func (u *UnitOfWork) GetKeyRepository(ctx context.Context) persistence.KeyRepository {
	return &KeyRepository{store: u.store}
}

func (u *UnitOfWork) GetTransactionRecordRepository(ctx context.Context) persistence.TransactionRecordRepository {
	return &TransactionRecordRepository{store: u.store}
}

func (u *UnitOfWork) GetDailyCodeRepository(ctx context.Context) persistence.DailyCodeRepository {
	return &DailyCodeRepository{store: u.store}
}
