package admin

import (
	"context"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
)

// Stats reports system-wide counts at the current time
func (s *Service) Stats(ctx context.Context) (entity.SystemStats, error) {
	return s.reports.SystemStats(ctx, s.timeProvider.Now())
}
