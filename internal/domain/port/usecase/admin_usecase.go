package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
)

// MintKeyRequest describes a key to create. Zero DurationDays means no expiry.
type MintKeyRequest struct {
	CreditAmount int64
	DurationDays int
	Description  string
	CustomValue  string
}

// IngestRequest carries raw inventory lines. Zero ExpiresInDays means the items never expire.
type IngestRequest struct {
	Lines         []string
	ExpiresInDays int
}

// AccountDetails is the admin view of one account
type AccountDetails struct {
	Account            *entity.Account
	ExpiryState        entity.ExpiryState
	Totals             entity.AccountTotals
	RecentTransactions []*entity.TransactionRecord
}

// AdminUseCase is the Administrative Adjustment Engine plus account administration.
// Callers are already authorized as admins.
type AdminUseCase interface {
	AdjustBalance(ctx context.Context, accountID uint64, delta int64, reason string) (int64, error)
	AdjustExpiry(ctx context.Context, accountID uint64, deltaDays int, reason string) (time.Time, error)
	MintKey(ctx context.Context, req MintKeyRequest) (*entity.RedeemableKey, error)
	// IngestInventory returns the number of non-blank lines attempted
	IngestInventory(ctx context.Context, req IngestRequest) (int, error)

	SetAccountActive(ctx context.Context, accountID uint64, active bool) error
	GetAccount(ctx context.Context, accountID uint64) (*AccountDetails, error)
	SearchAccounts(ctx context.Context, query string, limit int) ([]*entity.Account, error)
	SetDailyCode(ctx context.Context, adminID uint64, code string) (*entity.DailyCode, error)
	Stats(ctx context.Context) (entity.SystemStats, error)
}
