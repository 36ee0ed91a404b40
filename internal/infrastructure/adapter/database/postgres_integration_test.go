package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/exchange"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/redemption"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/unitofwork"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/repository"
	mockcore "github.com/amirhossein-jamali/credit-exchange/mocks/port/core"
)

type postgresLedger struct {
	db     *TestDBManager
	uow    persistence.UnitOfWork
	runner *unitofwork.Runner
}

func newPostgresLedger(t *testing.T, isolation sql.IsolationLevel) *postgresLedger {
	t.Helper()

	log := logger.NewNoopLogger()
	db := NewTestDBManager(t, log)
	db.Connect(t)
	db.SetupTestDB(t)

	uow := NewUnitOfWork(db.Manager.DB(), isolation, log, db.TimeProvider)
	runner := unitofwork.NewRunner(uow, unitofwork.RetryConfig{
		MaxAttempts:  10,
		BaseInterval: 2 * coreport.Millisecond,
		MaxInterval:  50 * coreport.Millisecond,
		JitterFactor: 0.5,
	}, db.TimeProvider, log, metrics.NewNoopRecorder())

	return &postgresLedger{db: db, uow: uow, runner: runner}
}

func (l *postgresLedger) insertInventory(t *testing.T, values ...string) {
	t.Helper()
	repo := l.uow.GetInventoryRepository(context.Background())
	for _, v := range values {
		n, err := repo.InsertBatch(context.Background(), []string{v}, nil, l.db.TimeProvider.Now())
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	}
}

func TestPostgresAccountRepository(t *testing.T) {
	ledger := newPostgresLedger(t, sql.LevelReadCommitted)
	ctx := context.Background()
	repo := ledger.uow.GetAccountRepository(ctx)

	id := ledger.db.CreateTestAccount(t, "alice", 100)

	balance, err := repo.DebitBalance(ctx, id, 60)
	require.NoError(t, err)
	assert.EqualValues(t, 40, balance)

	_, err = repo.DebitBalance(ctx, id, 50)
	var insufficient *errs.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.EqualValues(t, 40, insufficient.Balance)

	balance, err = repo.AddBalance(ctx, id, -70)
	require.NoError(t, err)
	assert.EqualValues(t, -30, balance, "admin adjustments may go negative")

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)

	duplicate, err := entity.NewAccount("alice", "other@example.com", entity.RoleUser, ledger.db.TimeProvider)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, duplicate), errs.ErrDuplicateValue)

	found, err := repo.Search(ctx, "ALI", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, id, found[0].ID)

	none, err := repo.Search(ctx, "%", 10)
	require.NoError(t, err)
	assert.Empty(t, none, "LIKE wildcards in the query are literal")
}

func TestPostgresInventoryInsertSkipsDuplicates(t *testing.T) {
	ledger := newPostgresLedger(t, sql.LevelReadCommitted)
	ctx := context.Background()
	repo := ledger.uow.GetInventoryRepository(ctx)
	now := ledger.db.TimeProvider.Now()

	n, err := repo.InsertBatch(ctx, []string{"TOK-1", "TOK-2", "TOK-1"}, nil, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.InsertBatch(ctx, []string{"TOK-2", "TOK-3"}, nil, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestPostgresInventoryRejectsOverlongValue(t *testing.T) {
	ledger := newPostgresLedger(t, sql.LevelReadCommitted)
	ctx := context.Background()
	repo := ledger.uow.GetInventoryRepository(ctx)

	_, err := repo.InsertBatch(ctx, []string{strings.Repeat("x", entity.MaxInventoryValueSize+1)}, nil, ledger.db.TimeProvider.Now())
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
}

func TestPostgresKeyCreateDoesNotLog(t *testing.T) {
	ledger := newPostgresLedger(t, sql.LevelReadCommitted)
	// No expectations: any log call on the success path fails the test
	repo := repository.NewKeyRepository(ledger.db.Manager.DB(), mockcore.NewMockLogger(t))

	key := &entity.RedeemableKey{
		Value:        "ABCD-EFGH-JKLM-NPQR",
		CreditAmount: 50,
		KeyType:      entity.KeyTypeRegular,
		CreatedAt:    ledger.db.TimeProvider.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), key))
	assert.NotZero(t, key.ID)
}

func TestPostgresLockAvailableSkipsLockedRows(t *testing.T) {
	ledger := newPostgresLedger(t, sql.LevelReadCommitted)
	ledger.insertInventory(t, "TOK-A", "TOK-B", "TOK-C")
	now := ledger.db.TimeProvider.Now()

	first, err := ledger.uow.Begin(context.Background())
	require.NoError(t, err)
	defer ledger.uow.Rollback(first)

	locked, err := ledger.uow.GetInventoryRepository(first).LockAvailable(first, 2, now)
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, "TOK-A", locked[0].Value)
	assert.Equal(t, "TOK-B", locked[1].Value)

	second, err := ledger.uow.Begin(context.Background())
	require.NoError(t, err)
	defer ledger.uow.Rollback(second)

	rest, err := ledger.uow.GetInventoryRepository(second).LockAvailable(second, 2, now)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "TOK-C", rest[0].Value)
}

func TestPostgresRollbackAfterCommitIsNoop(t *testing.T) {
	ledger := newPostgresLedger(t, sql.LevelReadCommitted)

	ctx, err := ledger.uow.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, ledger.uow.Commit(ctx))
	assert.NoError(t, ledger.uow.Rollback(ctx))
}

func TestPostgresConcurrentExchanges(t *testing.T) {
	for _, isolation := range []sql.IsolationLevel{sql.LevelReadCommitted, sql.LevelSerializable} {
		t.Run(isolation.String(), func(t *testing.T) {
			ledger := newPostgresLedger(t, isolation)
			service := exchange.NewExchangeService(ledger.runner, exchange.Config{}, ledger.db.TimeProvider,
				logger.NewNoopLogger(), metrics.NewNoopRecorder())

			const accounts = 8
			ids := make([]uint64, accounts)
			for i := range ids {
				ids[i] = ledger.db.CreateTestAccount(t, fmt.Sprintf("user%d", i), 100)
			}
			ledger.insertInventory(t, "TOK-1", "TOK-2", "TOK-3", "TOK-4", "TOK-5")

			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				claimed = map[string]uint64{}
				failed  int
			)
			for _, id := range ids {
				wg.Add(1)
				go func(id uint64) {
					defer wg.Done()
					result, err := service.Exchange(context.Background(), usecase.ExchangeRequest{AccountID: id, TokenCount: 1})
					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						assert.ErrorIs(t, err, errs.ErrInventoryExhausted)
						failed++
						return
					}
					for _, v := range result.TokenValues {
						_, dup := claimed[v]
						assert.False(t, dup, "token %s handed out twice", v)
						claimed[v] = id
					}
				}(id)
			}
			wg.Wait()

			assert.Equal(t, accounts, len(claimed)+failed)
			if isolation == sql.LevelReadCommitted {
				// An aborted serializable unit can make a waiter see an empty queue
				assert.Len(t, claimed, 5)
			}

			var mismatched int64
			require.NoError(t, ledger.db.Manager.DB().Raw(`
				SELECT COUNT(*) FROM accounts a
				WHERE a.request_balance <> COALESCE((SELECT SUM(delta) FROM transaction_records r WHERE r.account_id = a.id), 0)
			`).Scan(&mismatched).Error)
			assert.Zero(t, mismatched, "balances must equal the sum of their ledger rows")
		})
	}
}

func TestPostgresConcurrentRedemptionCreditsOnce(t *testing.T) {
	ledger := newPostgresLedger(t, sql.LevelReadCommitted)
	ctx := context.Background()
	service := redemption.NewRedemptionService(ledger.runner, ledger.db.TimeProvider,
		logger.NewNoopLogger(), metrics.NewNoopRecorder())

	key := &entity.RedeemableKey{
		Value:        "VIP-ABC123-XYZ789",
		CreditAmount: 200,
		KeyType:      entity.KeyTypeRegular,
		CreatedAt:    ledger.db.TimeProvider.Now(),
	}
	require.NoError(t, ledger.uow.GetKeyRepository(ctx).Create(ctx, key))

	ids := make([]uint64, 6)
	for i := range ids {
		ids[i] = ledger.db.CreateTestAccount(t, fmt.Sprintf("redeemer%d", i), 0)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			_, err := service.Redeem(ctx, id, key.Value)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			assert.ErrorIs(t, err, errs.ErrKeyAlreadyUsed)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)

	var total int64
	require.NoError(t, ledger.db.Manager.DB().Raw(`SELECT COALESCE(SUM(request_balance), 0) FROM accounts`).Scan(&total).Error)
	assert.EqualValues(t, 200, total)
}
