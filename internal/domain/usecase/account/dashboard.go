package account

import (
	"context"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
)

// GetDashboard returns the caller's balance, expiry state, ledger totals,
// latest records and claimed tokens
func (u *AccountUseCase) GetDashboard(ctx context.Context, accountID uint64) (*usecase.Dashboard, error) {
	uow := u.runner.UnitOfWork()

	account, err := uow.GetAccountRepository(ctx).GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	totals, err := u.reports.AccountTotals(ctx, accountID)
	if err != nil {
		u.logger.Error("Failed to load account totals", map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		})
		return nil, err
	}

	records, err := uow.GetTransactionRecordRepository(ctx).ListByAccount(ctx, accountID, dashboardTransactions)
	if err != nil {
		return nil, err
	}

	tokens, err := uow.GetInventoryRepository(ctx).ListClaimedBy(ctx, accountID, dashboardTokens)
	if err != nil {
		return nil, err
	}

	return &usecase.Dashboard{
		Account:            account,
		ExpiryState:        entity.AccountExpiryState(account, u.timeProvider.Now()),
		Totals:             totals,
		RecentTransactions: records,
		ClaimedTokens:      tokens,
	}, nil
}
