package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
)

// AdjustBalance applies delta without a floor and records it with reason
func (s *Service) AdjustBalance(ctx context.Context, accountID uint64, delta int64, reason string) (int64, error) {
	if delta == 0 {
		return 0, fmt.Errorf("%w: balance adjustment must be non-zero", errs.ErrInvalidAmount)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = fmt.Sprintf("Admin adjustment %+d requests", delta)
	}

	var newBalance int64
	err := s.runner.Run(ctx, "adjust_balance", func(ctx context.Context, uow persistence.UnitOfWork) error {
		accounts := uow.GetAccountRepository(ctx)
		if _, err := accounts.GetByIDForUpdate(ctx, accountID); err != nil {
			return err
		}

		balance, err := accounts.AddBalance(ctx, accountID, delta)
		if err != nil {
			return err
		}

		record, err := entity.NewTransactionRecord(accountID, delta, reason, s.timeProvider.Now())
		if err != nil {
			return err
		}
		if err := uow.GetTransactionRecordRepository(ctx).Append(ctx, record); err != nil {
			return err
		}
		newBalance = balance
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to adjust balance", map[string]any{
			"account_id": accountID,
			"delta":      delta,
			"error":      err.Error(),
		})
		return 0, err
	}

	if newBalance < 0 {
		s.logger.Warn("Admin adjustment left a negative balance", map[string]any{
			"account_id":  accountID,
			"new_balance": newBalance,
		})
	}
	s.logger.Info("Balance adjusted", map[string]any{
		"account_id":  accountID,
		"delta":       delta,
		"new_balance": newBalance,
	})
	return newBalance, nil
}
