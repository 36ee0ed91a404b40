package usecase

import (
	"context"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
)

// Dashboard is the account holder's own view
type Dashboard struct {
	Account            *entity.Account
	ExpiryState        entity.ExpiryState
	Totals             entity.AccountTotals
	RecentTransactions []*entity.TransactionRecord
	ClaimedTokens      []*entity.InventoryItem
}

// DefaultAccount is an account the service seeds at startup
type DefaultAccount struct {
	Username string
	Email    string
	Role     entity.Role
}

// AccountUseCase covers account creation and account-holder reads
type AccountUseCase interface {
	CreateAccount(ctx context.Context, username, email string, role entity.Role) (*entity.Account, error)
	// CreateDefaultAccounts creates the given accounts when their usernames are not taken
	CreateDefaultAccounts(ctx context.Context, accounts []DefaultAccount) error
	GetDashboard(ctx context.Context, accountID uint64) (*Dashboard, error)
	// GetDailyCode is denied to accounts whose access has expired
	GetDailyCode(ctx context.Context, accountID uint64) (*entity.DailyCode, error)
}
