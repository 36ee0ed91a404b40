package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
)

// ReportRepository implements persistence.ReportRepository over committed state
type ReportRepository struct {
	store *Store
}

// NewReportRepository creates a report repository for store
func NewReportRepository(store *Store) persistence.ReportRepository {
	return &ReportRepository{store: store}
}

func (r *ReportRepository) AccountTotals(ctx context.Context, accountID uint64) (entity.AccountTotals, error) {
	var totals entity.AccountTotals
	err := r.store.view(ctx, func(st *state) error {
		for _, rec := range st.records {
			if rec.AccountID != accountID {
				continue
			}
			totals.TransactionCount++
			if rec.Delta > 0 {
				totals.TotalEarned += rec.Delta
			} else {
				totals.TotalSpent += rec.Delta
			}
		}
		return nil
	})
	return totals, err
}

func (r *ReportRepository) SystemStats(ctx context.Context, now time.Time) (entity.SystemStats, error) {
	var stats entity.SystemStats
	err := r.store.view(ctx, func(st *state) error {
		stats.Accounts = int64(len(st.accounts))
		for _, a := range st.accounts {
			stats.TotalBalance += a.RequestBalance()
		}
		for _, k := range st.keys {
			if k.IsAvailable(now) {
				stats.AvailableKeys++
			}
		}
		for _, item := range st.inventory {
			if item.IsAvailable(now) {
				stats.AvailableTokens++
			}
		}
		return nil
	})
	return stats, err
}

func (r *ReportRepository) LedgerDiscrepancies(ctx context.Context, limit int) ([]entity.LedgerDiscrepancy, error) {
	var out []entity.LedgerDiscrepancy
	err := r.store.view(ctx, func(st *state) error {
		sums := make(map[uint64]int64, len(st.accounts))
		for _, rec := range st.records {
			sums[rec.AccountID] += rec.Delta
		}
		for id, a := range st.accounts {
			if a.RequestBalance() != sums[id] {
				out = append(out, entity.LedgerDiscrepancy{
					AccountID: id,
					Balance:   a.RequestBalance(),
					LedgerSum: sums[id],
				})
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b entity.LedgerDiscrepancy) int {
		return cmp.Compare(a.AccountID, b.AccountID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}
