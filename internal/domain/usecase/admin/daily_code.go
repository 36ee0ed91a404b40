package admin

import (
	"context"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
)

// SetDailyCode replaces the daily code and drops the cached copy
func (s *Service) SetDailyCode(ctx context.Context, adminID uint64, code string) (*entity.DailyCode, error) {
	dc, err := entity.NewDailyCode(code, adminID, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	err = s.runner.Run(ctx, "set_daily_code", func(ctx context.Context, uow persistence.UnitOfWork) error {
		return uow.GetDailyCodeRepository(ctx).Upsert(ctx, dc)
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, entity.DailyCodeCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate cached daily code", map[string]any{
			"error": err.Error(),
		})
	}

	s.logger.Info("Daily code updated", map[string]any{"updated_by": adminID})
	return dc, nil
}
