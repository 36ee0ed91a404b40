package persistence

import (
	"context"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
)

// DailyCodeRepository stores the single daily code row
type DailyCodeRepository interface {
	// Get returns the current code
	//
	// Possible errors:
	// - ErrDailyCodeNotSet: If no code has been stored yet
	Get(ctx context.Context) (*entity.DailyCode, error)

	// Upsert replaces the code; last writer wins
	Upsert(ctx context.Context, code *entity.DailyCode) error
}
