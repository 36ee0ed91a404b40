package admin

import (
	"context"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
)

// SetAccountActive enables or disables user operations for an account and
// leaves a zero-delta audit record
func (s *Service) SetAccountActive(ctx context.Context, accountID uint64, active bool) error {
	description := "Account deactivated by admin"
	if active {
		description = "Account activated by admin"
	}

	err := s.runner.Run(ctx, "set_account_active", func(ctx context.Context, uow persistence.UnitOfWork) error {
		if err := uow.GetAccountRepository(ctx).SetActive(ctx, accountID, active); err != nil {
			return err
		}
		record, err := entity.NewTransactionRecord(accountID, 0, description, s.timeProvider.Now())
		if err != nil {
			return err
		}
		return uow.GetTransactionRecordRepository(ctx).Append(ctx, record)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Account status changed", map[string]any{
		"account_id": accountID,
		"active":     active,
	})
	return nil
}

// GetAccount returns the account with its ledger totals and latest records
func (s *Service) GetAccount(ctx context.Context, accountID uint64) (*usecase.AccountDetails, error) {
	uow := s.runner.UnitOfWork()

	account, err := uow.GetAccountRepository(ctx).GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	totals, err := s.reports.AccountTotals(ctx, accountID)
	if err != nil {
		return nil, err
	}
	records, err := uow.GetTransactionRecordRepository(ctx).ListByAccount(ctx, accountID, recentTransactions)
	if err != nil {
		return nil, err
	}

	return &usecase.AccountDetails{
		Account:            account,
		ExpiryState:        entity.AccountExpiryState(account, s.timeProvider.Now()),
		Totals:             totals,
		RecentTransactions: records,
	}, nil
}

// SearchAccounts matches username or email
func (s *Service) SearchAccounts(ctx context.Context, query string, limit int) ([]*entity.Account, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultSearchLimit
	}
	return s.runner.UnitOfWork().GetAccountRepository(ctx).Search(ctx, query, limit)
}
