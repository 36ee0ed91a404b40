package account

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-exchange/internal/testutil/ledgertest"
	mockcore "github.com/amirhossein-jamali/credit-exchange/mocks/port/core"
)

func newUseCase(env *ledgertest.Env) usecase.AccountUseCase {
	return NewAccountUseCase(env.Runner, env.Reports, env.Cache, Config{DailyCodeTTL: time.Minute}, env.Clock, env.Logger)
}

func TestCreateAccount(t *testing.T) {
	env := ledgertest.New(t)
	uc := newUseCase(env)

	account, err := uc.CreateAccount(context.Background(), "alice", "Alice@Example.com", entity.RoleUser)

	require.NoError(t, err)
	assert.NotZero(t, account.ID)
	assert.Equal(t, "alice@example.com", account.Email)
	assert.True(t, account.IsActive)
	assert.EqualValues(t, 0, account.RequestBalance())

	_, err = uc.CreateAccount(context.Background(), "alice", "other@example.com", entity.RoleUser)
	assert.ErrorIs(t, err, errs.ErrDuplicateValue)

	_, err = uc.CreateAccount(context.Background(), "mallory", "mallory@example.com", entity.Role("owner"))
	assert.ErrorIs(t, err, errs.ErrInvalidRole)

	_, err = uc.CreateAccount(context.Background(), "", "nobody@example.com", entity.RoleUser)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestCreateDefaultAccounts(t *testing.T) {
	env := ledgertest.New(t)
	uc := newUseCase(env)
	defaults := []usecase.DefaultAccount{
		{Username: "admin", Email: "admin@example.com", Role: entity.RoleAdmin},
		{Username: "demo", Email: "demo@example.com", Role: entity.RoleUser},
	}

	require.NoError(t, uc.CreateDefaultAccounts(context.Background(), defaults))
	require.NoError(t, uc.CreateDefaultAccounts(context.Background(), defaults), "seeding is idempotent")

	admin, err := env.UoW.GetAccountRepository(context.Background()).GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	stats, err := env.Reports.SystemStats(context.Background(), env.Clock.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Accounts)
}

func TestGetDashboard(t *testing.T) {
	env := ledgertest.New(t)
	account := env.CreateAccount(t, "alice", 120)
	expiry := env.Clock.Now().Add(24 * time.Hour)
	env.SetExpiry(t, account.ID, &expiry, false)
	env.AddInventory(t, "TOKEN-A")

	ctx := context.Background()
	err := env.Runner.Run(ctx, "claim", func(ctx context.Context, uow persistence.UnitOfWork) error {
		items, err := uow.GetInventoryRepository(ctx).LockAvailable(ctx, 1, env.Clock.Now())
		if err != nil {
			return err
		}
		_, err = uow.GetInventoryRepository(ctx).MarkClaimed(ctx, []uint64{items[0].ID}, account.ID, env.Clock.Now())
		return err
	})
	require.NoError(t, err)

	dashboard, err := newUseCase(env).GetDashboard(ctx, account.ID)

	require.NoError(t, err)
	assert.EqualValues(t, 120, dashboard.Account.RequestBalance())
	assert.Equal(t, entity.ExpiryStateActive, dashboard.ExpiryState)
	assert.EqualValues(t, 120, dashboard.Totals.TotalEarned)
	assert.Len(t, dashboard.RecentTransactions, 1)
	require.Len(t, dashboard.ClaimedTokens, 1)
	assert.Equal(t, "TOKEN-A", dashboard.ClaimedTokens[0].Value)

	_, err = newUseCase(env).GetDashboard(ctx, 404)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestGetDailyCode(t *testing.T) {
	setCode := func(t *testing.T, env *ledgertest.Env, code string) {
		dc, err := entity.NewDailyCode(code, 1, env.Clock.Now())
		require.NoError(t, err)
		require.NoError(t, env.UoW.GetDailyCodeRepository(context.Background()).Upsert(context.Background(), dc))
	}

	t.Run("not set", func(t *testing.T) {
		env := ledgertest.New(t)
		account := env.CreateAccount(t, "alice", 0)

		_, err := newUseCase(env).GetDailyCode(context.Background(), account.ID)
		assert.ErrorIs(t, err, errs.ErrDailyCodeNotSet)
	})

	t.Run("expired account is denied", func(t *testing.T) {
		env := ledgertest.New(t)
		account := env.CreateAccount(t, "bob", 0)
		setCode(t, env, "OPEN-SESAME")
		past := env.Clock.Now().Add(-time.Second)
		env.SetExpiry(t, account.ID, &past, false)

		_, err := newUseCase(env).GetDailyCode(context.Background(), account.ID)
		assert.ErrorIs(t, err, errs.ErrAccountExpired)
	})

	t.Run("reads through the cache", func(t *testing.T) {
		env := ledgertest.New(t)
		account := env.CreateAccount(t, "carol", 0)
		setCode(t, env, "FIRST")
		uc := newUseCase(env)

		code, err := uc.GetDailyCode(context.Background(), account.ID)
		require.NoError(t, err)
		assert.Equal(t, "FIRST", code.Code)

		// a write that bypasses invalidation stays hidden until the entry expires
		setCode(t, env, "SECOND")
		code, err = uc.GetDailyCode(context.Background(), account.ID)
		require.NoError(t, err)
		assert.Equal(t, "FIRST", code.Code)

		env.Clock.Advance(2 * coreport.Minute)
		code, err = uc.GetDailyCode(context.Background(), account.ID)
		require.NoError(t, err)
		assert.Equal(t, "SECOND", code.Code)
	})

	t.Run("cached value is served without the store", func(t *testing.T) {
		env := ledgertest.New(t)
		account := env.CreateAccount(t, "dave", 0)
		raw, err := json.Marshal(entity.DailyCode{Code: "FROM-CACHE", UpdatedAt: env.Clock.Now()})
		require.NoError(t, err)

		cache := mockcore.NewMockStateStore(t)
		cache.EXPECT().Get(mock.Anything, entity.DailyCodeCacheKey).Return(raw, nil).Once()
		uc := NewAccountUseCase(env.Runner, env.Reports, cache, Config{DailyCodeTTL: time.Minute}, env.Clock, env.Logger)

		code, err := uc.GetDailyCode(context.Background(), account.ID)
		require.NoError(t, err)
		assert.Equal(t, "FROM-CACHE", code.Code)
	})
}
