package account

import (
	"context"
	"encoding/json"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

// GetDailyCode returns the daily code to active, unexpired accounts.
// The code is read through the state store cache.
func (u *AccountUseCase) GetDailyCode(ctx context.Context, accountID uint64) (*entity.DailyCode, error) {
	uow := u.runner.UnitOfWork()

	account, err := uow.GetAccountRepository(ctx).GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, errs.ErrAccountInactive
	}
	if entity.IsAccountExpired(account, u.timeProvider.Now()) {
		return nil, errs.ErrAccountExpired
	}

	if cached := u.cachedDailyCode(ctx); cached != nil {
		return cached, nil
	}

	code, err := uow.GetDailyCodeRepository(ctx).Get(ctx)
	if err != nil {
		return nil, err
	}
	u.cacheDailyCode(ctx, code)
	return code, nil
}

func (u *AccountUseCase) cachedDailyCode(ctx context.Context) *entity.DailyCode {
	if u.config.DailyCodeTTL == 0 {
		return nil
	}
	raw, err := u.cache.Get(ctx, entity.DailyCodeCacheKey)
	if err != nil {
		u.logger.Warn("Failed to read cached daily code", map[string]any{"error": err.Error()})
		return nil
	}
	if raw == nil {
		return nil
	}
	var code entity.DailyCode
	if err := json.Unmarshal(raw, &code); err != nil {
		u.logger.Warn("Discarding malformed cached daily code", map[string]any{"error": err.Error()})
		return nil
	}
	return &code
}

func (u *AccountUseCase) cacheDailyCode(ctx context.Context, code *entity.DailyCode) {
	if u.config.DailyCodeTTL == 0 {
		return
	}
	raw, err := json.Marshal(code)
	if err != nil {
		return
	}
	if err := u.cache.Set(ctx, entity.DailyCodeCacheKey, raw, u.config.DailyCodeTTL); err != nil {
		u.logger.Warn("Failed to cache daily code", map[string]any{"error": err.Error()})
	}
}
