// Package ledgertest wires a ledger over the in-memory store for use-case and handler tests
package ledgertest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/unitofwork"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/memory"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/statestore"
	timeadapter "github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/time"
)

// Epoch is the fixed start time of every Env clock
var Epoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// Env is a fully wired in-memory ledger
type Env struct {
	Store   *memory.Store
	UoW     persistence.UnitOfWork
	Reports persistence.ReportRepository
	Cache   coreport.StateStore
	Clock   *timeadapter.FixedTimeProvider
	Logger  coreport.Logger
	Metrics coreport.MetricsRecorder
	Runner  *unitofwork.Runner
}

// New creates an empty ledger whose clock starts at Epoch
func New(t testing.TB) *Env {
	t.Helper()

	store := memory.NewStore()
	clock := timeadapter.NewFixedTimeProvider(Epoch)
	log := logger.NewNoopLogger()
	recorder := metrics.NewNoopRecorder()
	uow := memory.NewUnitOfWork(store)

	return &Env{
		Store:   store,
		UoW:     uow,
		Reports: memory.NewReportRepository(store),
		Cache:   statestore.NewMemoryStateStore(clock),
		Clock:   clock,
		Logger:  log,
		Metrics: recorder,
		Runner: unitofwork.NewRunner(uow, unitofwork.RetryConfig{
			MaxAttempts:  5,
			BaseInterval: coreport.Millisecond,
			MaxInterval:  10 * coreport.Millisecond,
		}, clock, log, recorder),
	}
}

// CreateAccount stores an active user account and funds it through the ledger
func (e *Env) CreateAccount(t testing.TB, username string, balance int64) *entity.Account {
	t.Helper()
	return e.createAccount(t, username, entity.RoleUser, balance)
}

// CreateAdmin stores an active admin account
func (e *Env) CreateAdmin(t testing.TB, username string) *entity.Account {
	t.Helper()
	return e.createAccount(t, username, entity.RoleAdmin, 0)
}

func (e *Env) createAccount(t testing.TB, username string, role entity.Role, balance int64) *entity.Account {
	account, err := entity.NewAccount(username, username+"@example.com", role, e.Clock)
	require.NoError(t, err)

	err = e.Runner.Run(context.Background(), "seed_account", func(ctx context.Context, uow persistence.UnitOfWork) error {
		if err := uow.GetAccountRepository(ctx).Create(ctx, account); err != nil {
			return err
		}
		if balance == 0 {
			return nil
		}
		if _, err := uow.GetAccountRepository(ctx).AddBalance(ctx, account.ID, balance); err != nil {
			return err
		}
		record, err := entity.NewTransactionRecord(account.ID, balance, "Initial balance", e.Clock.Now())
		if err != nil {
			return err
		}
		return uow.GetTransactionRecordRepository(ctx).Append(ctx, record)
	})
	require.NoError(t, err)
	return e.Account(t, account.ID)
}

// Account reads the committed account
func (e *Env) Account(t testing.TB, id uint64) *entity.Account {
	t.Helper()
	account, err := e.UoW.GetAccountRepository(context.Background()).GetByID(context.Background(), id)
	require.NoError(t, err)
	return account
}

// SetExpiry overwrites the stored account expiry
func (e *Env) SetExpiry(t testing.TB, id uint64, expiry *time.Time, flagged bool) {
	t.Helper()
	require.NoError(t, e.UoW.GetAccountRepository(context.Background()).UpdateExpiry(context.Background(), id, expiry, flagged))
}

// AddInventory inserts values one second apart so their selection order is the argument order
func (e *Env) AddInventory(t testing.TB, values ...string) {
	t.Helper()
	repo := e.UoW.GetInventoryRepository(context.Background())
	for _, v := range values {
		n, err := repo.InsertBatch(context.Background(), []string{v}, nil, e.Clock.Now())
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		e.Clock.Advance(coreport.Second)
	}
}

// AddKey stores key as given
func (e *Env) AddKey(t testing.TB, key *entity.RedeemableKey) *entity.RedeemableKey {
	t.Helper()
	if key.KeyType == "" {
		key.KeyType = entity.KeyTypeRegular
	}
	if key.CreatedAt.IsZero() {
		key.CreatedAt = e.Clock.Now()
	}
	require.NoError(t, e.UoW.GetKeyRepository(context.Background()).Create(context.Background(), key))
	return key
}

// Key reads the committed key by value
func (e *Env) Key(t testing.TB, value string) *entity.RedeemableKey {
	t.Helper()
	key, err := e.UoW.GetKeyRepository(context.Background()).GetByValueForUpdate(context.Background(), value)
	require.NoError(t, err)
	return key
}

// Records returns the account's ledger rows, newest first
func (e *Env) Records(t testing.TB, accountID uint64) []*entity.TransactionRecord {
	t.Helper()
	records, err := e.UoW.GetTransactionRecordRepository(context.Background()).ListByAccount(context.Background(), accountID, 0)
	require.NoError(t, err)
	return records
}

// RequireLedgerBalanced fails when any balance differs from the sum of its ledger rows
func (e *Env) RequireLedgerBalanced(t testing.TB) {
	t.Helper()
	discrepancies, err := e.Reports.LedgerDiscrepancies(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, discrepancies, "every balance must equal the sum of its ledger deltas")
}
