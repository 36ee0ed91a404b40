package redemption

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/unitofwork"
)

const (
	operationRedeem       = "redeem_key"
	operationMarkKeyStale = "mark_key_expired"
)

// errExpiredOnRead signals that the key expired by time and its flag must be persisted
var errExpiredOnRead = fmt.Errorf("%w: detected on read", errs.ErrKeyExpired)

// Service implements usecase.RedemptionUseCase
type Service struct {
	runner       *unitofwork.Runner
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
}

// NewRedemptionService creates the Key Redemption Engine
func NewRedemptionService(
	runner *unitofwork.Runner,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
) usecase.RedemptionUseCase {
	return &Service{
		runner:       runner,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// Redeem checks, in order, key existence, prior use and expiry, then marks the
// key used, credits the account and appends a ledger row in one unit.
func (s *Service) Redeem(ctx context.Context, accountID uint64, keyValue string) (*usecase.RedemptionResult, error) {
	if accountID == 0 {
		return nil, errs.ErrUnauthorized
	}
	value, err := entity.NormalizeKeyValue(keyValue)
	if err != nil {
		return nil, err
	}

	var (
		result       *usecase.RedemptionResult
		expiredKeyID uint64
	)
	err = s.runner.Run(ctx, operationRedeem, func(ctx context.Context, uow persistence.UnitOfWork) error {
		r, keyID, err := s.redeemInUnit(ctx, uow, accountID, value)
		if err != nil {
			if errors.Is(err, errExpiredOnRead) {
				expiredKeyID = keyID
			}
			return err
		}
		result = r
		return nil
	})

	if errors.Is(err, errExpiredOnRead) {
		err = s.materializeExpiry(ctx, expiredKeyID, value)
	}
	if err != nil {
		s.logger.Warn("Key redemption rejected", mergeFields(errs.LogFields(err), map[string]any{
			"account_id": accountID,
			"key_value":  value,
		}))
		return nil, err
	}

	s.metrics.AddCreditsRedeemed(result.CreditAmount)
	s.logger.Info("Key redeemed", map[string]any{
		"account_id":    accountID,
		"key_value":     value,
		"credit_amount": result.CreditAmount,
		"new_balance":   result.NewBalance,
	})
	return result, nil
}

func (s *Service) redeemInUnit(
	ctx context.Context,
	uow persistence.UnitOfWork,
	accountID uint64,
	value string,
) (*usecase.RedemptionResult, uint64, error) {
	now := s.timeProvider.Now()
	accounts := uow.GetAccountRepository(ctx)
	keys := uow.GetKeyRepository(ctx)

	account, err := accounts.GetByIDForUpdate(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	if !account.IsActive {
		return nil, 0, errs.ErrAccountInactive
	}

	key, err := keys.GetByValueForUpdate(ctx, value)
	if err != nil {
		return nil, 0, err
	}
	if key.IsUsed || key.IsExpiredFlag {
		return nil, key.ID, key.CheckRedeemable(now)
	}
	if key.IsTimeExpired(now) {
		return nil, key.ID, errExpiredOnRead
	}

	if err := keys.MarkUsed(ctx, key.ID, accountID, now); err != nil {
		return nil, key.ID, err
	}
	newBalance, err := accounts.AddBalance(ctx, accountID, key.CreditAmount)
	if err != nil {
		return nil, key.ID, err
	}

	record, err := entity.NewTransactionRecord(accountID, key.CreditAmount, key.LedgerDescription(), now)
	if err != nil {
		return nil, key.ID, err
	}
	if err := uow.GetTransactionRecordRepository(ctx).Append(ctx, record); err != nil {
		return nil, key.ID, err
	}

	return &usecase.RedemptionResult{
		CreditAmount: key.CreditAmount,
		Description:  key.Description,
		NewBalance:   newBalance,
	}, key.ID, nil
}

// materializeExpiry persists the expired flag in its own committed unit and
// always reports the key as expired.
func (s *Service) materializeExpiry(ctx context.Context, keyID uint64, value string) error {
	err := s.runner.Run(ctx, operationMarkKeyStale, func(ctx context.Context, uow persistence.UnitOfWork) error {
		return uow.GetKeyRepository(ctx).MarkExpired(ctx, keyID)
	})
	if err != nil {
		s.logger.Error("Failed to persist key expiry flag", map[string]any{
			"key_id": keyID,
			"error":  err.Error(),
		})
	}
	return errs.NewKeyRedemptionError(value, errs.ErrKeyExpired)
}

func mergeFields(base, extra map[string]any) map[string]any {
	for k, v := range extra {
		base[k] = v
	}
	return base
}
