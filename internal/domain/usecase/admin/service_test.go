package admin

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-exchange/internal/testutil/ledgertest"
	mockcore "github.com/amirhossein-jamali/credit-exchange/mocks/port/core"
)

func newService(env *ledgertest.Env, config Config) usecase.AdminUseCase {
	return NewAdminService(env.Runner, env.Reports, env.Cache, config, nil, env.Clock, env.Logger)
}

func TestAdjustBalance(t *testing.T) {
	t.Run("negative adjustment has no floor", func(t *testing.T) {
		env := ledgertest.New(t)
		account := env.CreateAccount(t, "alice", 10)

		balance, err := newService(env, Config{}).AdjustBalance(context.Background(), account.ID, -30, "")

		require.NoError(t, err)
		assert.EqualValues(t, -20, balance)
		assert.EqualValues(t, -20, env.Account(t, account.ID).RequestBalance())

		records := env.Records(t, account.ID)
		require.Len(t, records, 2)
		assert.EqualValues(t, -30, records[0].Delta)
		assert.Equal(t, "Admin adjustment -30 requests", records[0].Description)
		env.RequireLedgerBalanced(t)
	})

	t.Run("reason is recorded", func(t *testing.T) {
		env := ledgertest.New(t)
		account := env.CreateAccount(t, "bob", 0)

		balance, err := newService(env, Config{}).AdjustBalance(context.Background(), account.ID, 500, "  goodwill credit ")

		require.NoError(t, err)
		assert.EqualValues(t, 500, balance)
		assert.Equal(t, "goodwill credit", env.Records(t, account.ID)[0].Description)
	})

	t.Run("zero delta", func(t *testing.T) {
		env := ledgertest.New(t)
		account := env.CreateAccount(t, "carol", 10)

		_, err := newService(env, Config{}).AdjustBalance(context.Background(), account.ID, 0, "")

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Len(t, env.Records(t, account.ID), 1)
	})

	t.Run("unknown account", func(t *testing.T) {
		env := ledgertest.New(t)

		_, err := newService(env, Config{}).AdjustBalance(context.Background(), 404, 10, "")

		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})
}

func TestAdjustExpiry(t *testing.T) {
	t.Run("starts from now when unset", func(t *testing.T) {
		env := ledgertest.New(t)
		account := env.CreateAccount(t, "alice", 0)

		expiry, err := newService(env, Config{}).AdjustExpiry(context.Background(), account.ID, 30, "")

		require.NoError(t, err)
		assert.Equal(t, env.Clock.Now().Add(30*24*time.Hour), expiry)

		stored := env.Account(t, account.ID)
		require.NotNil(t, stored.ExpiryTime)
		assert.Equal(t, expiry, *stored.ExpiryTime)
		assert.False(t, stored.IsExpiredFlag)

		records := env.Records(t, account.ID)
		require.Len(t, records, 1)
		assert.EqualValues(t, 0, records[0].Delta)
		assert.Equal(t, "Admin expiry adjustment +30 days", records[0].Description)
		env.RequireLedgerBalanced(t)
	})

	t.Run("extends the current expiry and clears the flag", func(t *testing.T) {
		env := ledgertest.New(t)
		account := env.CreateAccount(t, "bob", 0)
		current := env.Clock.Now().Add(-48 * time.Hour)
		env.SetExpiry(t, account.ID, &current, true)

		expiry, err := newService(env, Config{}).AdjustExpiry(context.Background(), account.ID, 7, "renewal")

		require.NoError(t, err)
		assert.Equal(t, current.Add(7*24*time.Hour), expiry)
		stored := env.Account(t, account.ID)
		assert.False(t, stored.IsExpiredFlag)
		assert.Equal(t, entity.ExpiryStateActive, entity.AccountExpiryState(stored, env.Clock.Now()))
	})

	t.Run("negative days shorten access", func(t *testing.T) {
		env := ledgertest.New(t)
		account := env.CreateAccount(t, "carol", 0)

		expiry, err := newService(env, Config{}).AdjustExpiry(context.Background(), account.ID, -1, "")

		require.NoError(t, err)
		assert.True(t, expiry.Before(env.Clock.Now()))
		assert.True(t, entity.IsAccountExpired(env.Account(t, account.ID), env.Clock.Now()))
	})

	t.Run("zero days clears a stale flag", func(t *testing.T) {
		env := ledgertest.New(t)
		account := env.CreateAccount(t, "dave", 0)
		current := env.Clock.Now().Add(48 * time.Hour)
		env.SetExpiry(t, account.ID, &current, true)

		expiry, err := newService(env, Config{}).AdjustExpiry(context.Background(), account.ID, 0, "reset stale flag")

		require.NoError(t, err)
		assert.True(t, current.Equal(expiry))
		stored := env.Account(t, account.ID)
		assert.False(t, stored.IsExpiredFlag)
		require.NotNil(t, stored.ExpiryTime)
		assert.True(t, current.Equal(*stored.ExpiryTime))
		assert.False(t, entity.IsAccountExpired(stored, env.Clock.Now()))

		records := env.Records(t, account.ID)
		require.Len(t, records, 1)
		assert.Zero(t, records[0].Delta)
		assert.Equal(t, "reset stale flag", records[0].Description)
	})
}

func TestMintKey(t *testing.T) {
	t.Run("generated value", func(t *testing.T) {
		env := ledgertest.New(t)

		key, err := newService(env, Config{}).MintKey(context.Background(), usecase.MintKeyRequest{
			CreditAmount: 250,
			DurationDays: 3,
			Description:  "spring campaign",
		})

		require.NoError(t, err)
		_, formatErr := entity.NormalizeKeyValue(key.Value)
		assert.NoError(t, formatErr)
		assert.Equal(t, entity.KeyTypeRegular, key.KeyType)
		require.NotNil(t, key.ExpiresAt)
		assert.Equal(t, env.Clock.Now().Add(72*time.Hour), *key.ExpiresAt)

		stored := env.Key(t, key.Value)
		assert.EqualValues(t, 250, stored.CreditAmount)
		assert.False(t, stored.IsUsed)
	})

	t.Run("custom value is normalized", func(t *testing.T) {
		env := ledgertest.New(t)

		key, err := newService(env, Config{}).MintKey(context.Background(), usecase.MintKeyRequest{
			CreditAmount: 10,
			CustomValue:  "  vip-abc123-xyz789 ",
		})

		require.NoError(t, err)
		assert.Equal(t, "VIP-ABC123-XYZ789", key.Value)
		assert.Equal(t, entity.KeyTypeCustom, key.KeyType)
		assert.Nil(t, key.ExpiresAt)
	})

	t.Run("duplicate custom value", func(t *testing.T) {
		env := ledgertest.New(t)
		service := newService(env, Config{})
		req := usecase.MintKeyRequest{CreditAmount: 10, CustomValue: "VIP-ABC123-XYZ789"}

		_, err := service.MintKey(context.Background(), req)
		require.NoError(t, err)
		_, err = service.MintKey(context.Background(), req)
		assert.ErrorIs(t, err, errs.ErrDuplicateValue)
	})

	t.Run("generation retries collisions", func(t *testing.T) {
		env := ledgertest.New(t)
		// zero bytes always produce VIP-AAAAAA-AAAAAA, then ones produce VIP-BBBBBB-BBBBBB
		random := bytes.NewReader(append(bytes.Repeat([]byte{0}, 24), bytes.Repeat([]byte{1}, 12)...))
		service := NewAdminService(env.Runner, env.Reports, env.Cache, Config{}, random, env.Clock, env.Logger)
		env.AddKey(t, &entity.RedeemableKey{Value: "VIP-AAAAAA-AAAAAA", CreditAmount: 1})

		key, err := service.MintKey(context.Background(), usecase.MintKeyRequest{CreditAmount: 5})

		require.NoError(t, err)
		assert.Equal(t, "VIP-BBBBBB-BBBBBB", key.Value)
	})

	t.Run("generation gives up after repeated collisions", func(t *testing.T) {
		env := ledgertest.New(t)
		random := bytes.NewReader(bytes.Repeat([]byte{0}, 12*keyGenerationAttempts))
		service := NewAdminService(env.Runner, env.Reports, env.Cache, Config{}, random, env.Clock, env.Logger)
		env.AddKey(t, &entity.RedeemableKey{Value: "VIP-AAAAAA-AAAAAA", CreditAmount: 1})

		_, err := service.MintKey(context.Background(), usecase.MintKeyRequest{CreditAmount: 5})

		assert.ErrorIs(t, err, errs.ErrInternal)
	})

	invalid := []struct {
		name    string
		req     usecase.MintKeyRequest
		wantErr error
	}{
		{"zero credit", usecase.MintKeyRequest{CreditAmount: 0}, errs.ErrInvalidAmount},
		{"credit above limit", usecase.MintKeyRequest{CreditAmount: entity.MaxKeyCreditAmount + 1}, errs.ErrInvalidAmount},
		{"negative duration", usecase.MintKeyRequest{CreditAmount: 1, DurationDays: -1}, errs.ErrInvalidAmount},
		{"long description", usecase.MintKeyRequest{CreditAmount: 1, Description: strings.Repeat("x", entity.MaxKeyDescriptionSize+1)}, errs.ErrInvalidInput},
		{"malformed custom value", usecase.MintKeyRequest{CreditAmount: 1, CustomValue: "VIP-SHORT"}, errs.ErrInvalidKeyFormat},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			env := ledgertest.New(t)
			_, err := newService(env, Config{}).MintKey(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestIngestInventory(t *testing.T) {
	t.Run("skips blanks and reports attempted lines", func(t *testing.T) {
		env := ledgertest.New(t)
		env.AddInventory(t, "TOKEN-EXISTING")

		attempted, err := newService(env, Config{IngestBatchSize: 2}).IngestInventory(context.Background(), usecase.IngestRequest{
			Lines: []string{" TOKEN-1 ", "", "TOKEN-2", "   ", "TOKEN-EXISTING", "TOKEN-3", "TOKEN-1"},
		})

		require.NoError(t, err)
		assert.Equal(t, 5, attempted)

		stats, err := env.Reports.SystemStats(context.Background(), env.Clock.Now())
		require.NoError(t, err)
		assert.EqualValues(t, 4, stats.AvailableTokens, "duplicates are skipped silently")
	})

	t.Run("expiry applies to the batch", func(t *testing.T) {
		env := ledgertest.New(t)

		_, err := newService(env, Config{}).IngestInventory(context.Background(), usecase.IngestRequest{
			Lines:         []string{"TOKEN-1"},
			ExpiresInDays: 1,
		})
		require.NoError(t, err)

		env.Clock.Advance(coreport.Day)
		stats, err := env.Reports.SystemStats(context.Background(), env.Clock.Now())
		require.NoError(t, err)
		assert.EqualValues(t, 0, stats.AvailableTokens)
	})

	t.Run("empty upload", func(t *testing.T) {
		env := ledgertest.New(t)

		_, err := newService(env, Config{}).IngestInventory(context.Background(), usecase.IngestRequest{
			Lines: []string{"", "  ", "\t"},
		})
		assert.ErrorIs(t, err, errs.ErrEmptyUpload)
	})

	t.Run("overlong line rejects the upload", func(t *testing.T) {
		env := ledgertest.New(t)

		_, err := newService(env, Config{}).IngestInventory(context.Background(), usecase.IngestRequest{
			Lines: []string{"TOKEN-1", strings.Repeat("x", entity.MaxInventoryValueSize+1)},
		})
		require.ErrorIs(t, err, errs.ErrInvalidInput)
		assert.Contains(t, err.Error(), "line 2")

		stats, err := env.Reports.SystemStats(context.Background(), env.Clock.Now())
		require.NoError(t, err)
		assert.Zero(t, stats.AvailableTokens, "nothing is stored when a line is rejected")
	})

	t.Run("value at the size limit is accepted", func(t *testing.T) {
		env := ledgertest.New(t)

		attempted, err := newService(env, Config{}).IngestInventory(context.Background(), usecase.IngestRequest{
			Lines: []string{strings.Repeat("x", entity.MaxInventoryValueSize)},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, attempted)
	})
}

func TestAccountAdministration(t *testing.T) {
	env := ledgertest.New(t)
	service := newService(env, Config{})
	alice := env.CreateAccount(t, "alice", 100)
	env.CreateAccount(t, "alfred", 0)
	env.CreateAccount(t, "bob", 0)

	_, err := service.AdjustBalance(context.Background(), alice.ID, -40, "")
	require.NoError(t, err)

	details, err := service.GetAccount(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 60, details.Account.RequestBalance())
	assert.Equal(t, entity.ExpiryStateNone, details.ExpiryState)
	assert.EqualValues(t, 100, details.Totals.TotalEarned)
	assert.EqualValues(t, -40, details.Totals.TotalSpent)
	assert.EqualValues(t, 2, details.Totals.TransactionCount)
	assert.Len(t, details.RecentTransactions, 2)

	found, err := service.SearchAccounts(context.Background(), "AL", 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	require.NoError(t, service.SetAccountActive(context.Background(), alice.ID, false))
	assert.False(t, env.Account(t, alice.ID).IsActive)
	records := env.Records(t, alice.ID)
	assert.Zero(t, records[0].Delta)
	assert.Equal(t, "Account deactivated by admin", records[0].Description)

	assert.ErrorIs(t, service.SetAccountActive(context.Background(), 404, true), errs.ErrAccountNotFound)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Accounts)
	assert.EqualValues(t, 60, stats.TotalBalance)
}

func TestSetDailyCode(t *testing.T) {
	t.Run("stores the code and invalidates the cache", func(t *testing.T) {
		env := ledgertest.New(t)
		admin := env.CreateAdmin(t, "root")
		cache := mockcore.NewMockStateStore(t)
		cache.EXPECT().Delete(mock.Anything, entity.DailyCodeCacheKey).Return(nil).Once()
		service := NewAdminService(env.Runner, env.Reports, cache, Config{}, nil, env.Clock, env.Logger)

		code, err := service.SetDailyCode(context.Background(), admin.ID, "  OPEN-SESAME ")

		require.NoError(t, err)
		assert.Equal(t, "OPEN-SESAME", code.Code)
		stored, err := env.UoW.GetDailyCodeRepository(context.Background()).Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "OPEN-SESAME", stored.Code)
		assert.Equal(t, admin.ID, *stored.UpdatedBy)
	})

	t.Run("cache failures do not fail the update", func(t *testing.T) {
		env := ledgertest.New(t)
		cache := mockcore.NewMockStateStore(t)
		cache.EXPECT().Delete(mock.Anything, entity.DailyCodeCacheKey).Return(errors.New("redis down")).Once()
		service := NewAdminService(env.Runner, env.Reports, cache, Config{}, nil, env.Clock, env.Logger)

		_, err := service.SetDailyCode(context.Background(), 1, "CODE")
		assert.NoError(t, err)
	})

	t.Run("blank code", func(t *testing.T) {
		env := ledgertest.New(t)

		_, err := newService(env, Config{}).SetDailyCode(context.Background(), 1, "   ")
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}
