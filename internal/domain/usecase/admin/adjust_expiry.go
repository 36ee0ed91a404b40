package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
)

// AdjustExpiry moves the account expiry by deltaDays from its current value
// (or from now) and clears the expired flag. Zero days only clears the flag.
// A zero-delta record is kept for audit.
func (s *Service) AdjustExpiry(ctx context.Context, accountID uint64, deltaDays int, reason string) (time.Time, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = fmt.Sprintf("Admin expiry adjustment %+d days", deltaDays)
	}

	var newExpiry time.Time
	err := s.runner.Run(ctx, "adjust_expiry", func(ctx context.Context, uow persistence.UnitOfWork) error {
		now := s.timeProvider.Now()
		accounts := uow.GetAccountRepository(ctx)

		account, err := accounts.GetByIDForUpdate(ctx, accountID)
		if err != nil {
			return err
		}

		expiry := account.ExtendExpiry(deltaDays, now)
		if err := accounts.UpdateExpiry(ctx, accountID, &expiry, account.IsExpiredFlag); err != nil {
			return err
		}

		record, err := entity.NewTransactionRecord(accountID, 0, reason, now)
		if err != nil {
			return err
		}
		if err := uow.GetTransactionRecordRepository(ctx).Append(ctx, record); err != nil {
			return err
		}
		newExpiry = expiry
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to adjust expiry", map[string]any{
			"account_id": accountID,
			"delta_days": deltaDays,
			"error":      err.Error(),
		})
		return time.Time{}, err
	}

	s.logger.Info("Expiry adjusted", map[string]any{
		"account_id": accountID,
		"delta_days": deltaDays,
		"new_expiry": newExpiry,
	})
	return newExpiry, nil
}
