package entity

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

func TestExchangeCost(t *testing.T) {
	cost, err := ExchangeCost(3, 10)
	require.NoError(t, err)
	assert.Equal(t, 3*ExchangeRate, cost)

	_, err = ExchangeCost(0, 10)
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	_, err = ExchangeCost(11, 10)
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)

	_, err = ExchangeCost(1000, 0)
	assert.NoError(t, err, "zero limit means unbounded")
}

func TestNormalizeKeyValue(t *testing.T) {
	v, err := NormalizeKeyValue("  VIP-ABC123-Z9Y8X7\n")
	require.NoError(t, err)
	assert.Equal(t, "VIP-ABC123-Z9Y8X7", v)

	for _, bad := range []string{"", "vip-abc123-z9y8x7", "VIP-ABC12-Z9Y8X7", "VIP-ABC123Z9Y8X7", "TOK-ABC123-Z9Y8X7"} {
		_, err := NormalizeKeyValue(bad)
		assert.ErrorIs(t, err, errs.ErrInvalidKeyFormat, bad)
	}
}

func TestGenerateValues(t *testing.T) {
	// 252..255 are rejected; 0 maps to A and 26 maps to 0
	src := bytes.NewReader(append([]byte{252, 253, 0, 26}, bytes.Repeat([]byte{1}, 64)...))
	key, err := GenerateKeyValue(src)
	require.NoError(t, err)
	assert.Equal(t, "VIP-A0BBBB-BBBBBB", key)

	token, err := GenerateTokenValue(nil)
	require.NoError(t, err)
	assert.True(t, IsTokenValue(token), token)
	assert.False(t, IsTokenValue(strings.ToLower(token)))

	_, err = GenerateKeyValue(bytes.NewReader(nil))
	assert.ErrorIs(t, err, errs.ErrInternal)
}

func TestRedeemableKeyChecks(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)

	testCases := []struct {
		name string
		key  RedeemableKey
		want error
	}{
		{"Fresh", RedeemableKey{Value: "VIP-AAAAAA-AAAAAA"}, nil},
		{"Used", RedeemableKey{IsUsed: true, ExpiresAt: &past}, errs.ErrKeyAlreadyUsed},
		{"Flagged", RedeemableKey{IsExpiredFlag: true}, errs.ErrKeyExpired},
		{"TimeExpired", RedeemableKey{ExpiresAt: &past}, errs.ErrKeyExpired},
		{"ExpiresExactlyNow", RedeemableKey{ExpiresAt: &now}, errs.ErrKeyExpired},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.key.CheckRedeemable(now)
			if tc.want == nil {
				assert.NoError(t, err)
				assert.True(t, tc.key.IsAvailable(now))
				return
			}
			assert.ErrorIs(t, err, tc.want)
			assert.False(t, tc.key.IsAvailable(now))
		})
	}

	k := RedeemableKey{Value: "VIP-AAAAAA-AAAAAA"}
	assert.Equal(t, "VIP key: VIP-AAAAAA-AAAAAA - no description", k.LedgerDescription())
}

func TestInventoryItemClaim(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)

	item := &InventoryItem{Value: "TOK-X"}
	assert.True(t, item.IsAvailable(now))
	require.NoError(t, item.Claim(9, now))
	assert.Equal(t, uint64(9), *item.ClaimedBy)
	assert.False(t, item.IsAvailable(now))
	assert.ErrorIs(t, item.Claim(10, now), errs.ErrConcurrentModification)
	assert.Equal(t, uint64(9), *item.ClaimedBy, "a claimed item is never reassigned")

	expired := &InventoryItem{ExpiresAt: &past}
	assert.False(t, expired.IsAvailable(now))
}

func TestNewTransactionRecord(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	r, err := NewTransactionRecord(1, 0, " Account deactivated by admin ", now)
	require.NoError(t, err)
	assert.Equal(t, "Account deactivated by admin", r.Description)
	assert.Zero(t, r.Delta)

	_, err = NewTransactionRecord(0, 5, "x", now)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	_, err = NewTransactionRecord(1, 5, "  ", now)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	totals := AccountTotals{TotalEarned: 100, TotalSpent: -40}
	assert.Equal(t, int64(60), totals.Net())
}

func TestNewDailyCode(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	dc, err := NewDailyCode("  SUNRISE ", 4, now)
	require.NoError(t, err)
	assert.Equal(t, "SUNRISE", dc.Code)
	require.NotNil(t, dc.UpdatedBy)
	assert.Equal(t, uint64(4), *dc.UpdatedBy)

	dc, err = NewDailyCode("X", 0, now)
	require.NoError(t, err)
	assert.Nil(t, dc.UpdatedBy)

	_, err = NewDailyCode("", 1, now)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	_, err = NewDailyCode(strings.Repeat("x", 101), 1, now)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}
