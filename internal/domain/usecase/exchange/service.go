package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/unitofwork"
)

const operationExchange = "exchange"

// Config tunes the Exchange Engine
type Config struct {
	MaxTokensPerExchange int
	// EnforceAccountExpiry rejects accounts the expiry policy reports as lapsed
	EnforceAccountExpiry bool
}

// Service implements usecase.ExchangeUseCase
type Service struct {
	runner       *unitofwork.Runner
	config       Config
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
}

// NewExchangeService creates the Exchange Engine
func NewExchangeService(
	runner *unitofwork.Runner,
	config Config,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
) usecase.ExchangeUseCase {
	if config.MaxTokensPerExchange <= 0 {
		config.MaxTokensPerExchange = entity.DefaultMaxTokensPerExchange
	}
	return &Service{
		runner:       runner,
		config:       config,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// Exchange claims req.TokenCount inventory items for the account at ExchangeRate each.
// Balance and availability are re-checked inside the same unit that mutates them.
func (s *Service) Exchange(ctx context.Context, req usecase.ExchangeRequest) (*usecase.ExchangeResult, error) {
	tokenCount := req.TokenCount
	if req.AccountID == 0 {
		return nil, errs.ErrUnauthorized
	}
	cost, err := entity.ExchangeCost(tokenCount, s.config.MaxTokensPerExchange)
	if err != nil {
		return nil, err
	}

	var result *usecase.ExchangeResult
	err = s.runner.Run(ctx, operationExchange, func(ctx context.Context, uow persistence.UnitOfWork) error {
		r, err := s.exchangeInUnit(ctx, uow, req.AccountID, tokenCount, cost)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		s.logger.Warn("Exchange rejected", mergeFields(errs.LogFields(err), map[string]any{
			"account_id":  req.AccountID,
			"token_count": tokenCount,
		}))
		return nil, err
	}

	s.metrics.AddTokensClaimed(len(result.TokenValues))
	s.logger.Info("Exchange completed", map[string]any{
		"account_id":  req.AccountID,
		"token_count": tokenCount,
		"cost":        cost,
		"new_balance": result.NewBalance,
	})
	return result, nil
}

func (s *Service) exchangeInUnit(
	ctx context.Context,
	uow persistence.UnitOfWork,
	accountID uint64,
	tokenCount int,
	cost int64,
) (*usecase.ExchangeResult, error) {
	now := s.timeProvider.Now()
	accounts := uow.GetAccountRepository(ctx)
	inventory := uow.GetInventoryRepository(ctx)

	account, err := accounts.GetByIDForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccount(account, now); err != nil {
		return nil, err
	}
	if !account.CanAfford(cost) {
		return nil, errs.NewInsufficientBalanceError(accountID, cost, account.RequestBalance())
	}

	items, err := inventory.LockAvailable(ctx, tokenCount, now)
	if err != nil {
		return nil, err
	}
	if len(items) < tokenCount {
		return nil, errs.NewInventoryExhaustedError(tokenCount, len(items))
	}

	ids := make([]uint64, len(items))
	values := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
		values[i] = item.Value
	}

	claimed, err := inventory.MarkClaimed(ctx, ids, accountID, now)
	if err != nil {
		return nil, err
	}
	if claimed != int64(len(ids)) {
		return nil, fmt.Errorf("%w: claimed %d of %d inventory items", errs.ErrConcurrentModification, claimed, len(ids))
	}

	newBalance, err := accounts.DebitBalance(ctx, accountID, cost)
	if err != nil {
		return nil, err
	}

	record, err := entity.NewTransactionRecord(accountID, -cost, entity.ExchangeDescription(tokenCount), now)
	if err != nil {
		return nil, err
	}
	if err := uow.GetTransactionRecordRepository(ctx).Append(ctx, record); err != nil {
		return nil, err
	}

	return &usecase.ExchangeResult{
		TokenValues: values,
		Cost:        cost,
		NewBalance:  newBalance,
	}, nil
}

func (s *Service) checkAccount(account *entity.Account, now time.Time) error {
	if !account.IsActive {
		return errs.ErrAccountInactive
	}
	if s.config.EnforceAccountExpiry && entity.IsAccountExpired(account, now) {
		return errs.ErrAccountExpired
	}
	return nil
}

func mergeFields(base, extra map[string]any) map[string]any {
	for k, v := range extra {
		base[k] = v
	}
	return base
}
