package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
)

// ReportRepository serves read-only aggregates outside any unit of work
type ReportRepository interface {
	// AccountTotals sums positive and negative deltas for accountID
	AccountTotals(ctx context.Context, accountID uint64) (entity.AccountTotals, error)

	// SystemStats counts accounts, balances and what is still available at now
	SystemStats(ctx context.Context, now time.Time) (entity.SystemStats, error)

	// LedgerDiscrepancies lists accounts whose balance differs from the sum of their deltas
	LedgerDiscrepancies(ctx context.Context, limit int) ([]entity.LedgerDiscrepancy, error)
}
