package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/database"
)

const accountTotalsQuery = `
SELECT COALESCE(SUM(delta) FILTER (WHERE delta > 0), 0),
       COALESCE(SUM(delta) FILTER (WHERE delta < 0), 0),
       COUNT(*)
FROM transaction_records
WHERE account_id = $1`

const systemStatsQuery = `
SELECT (SELECT COUNT(*) FROM accounts),
       (SELECT COALESCE(SUM(request_balance), 0) FROM accounts),
       (SELECT COUNT(*) FROM redeemable_keys
         WHERE NOT is_used AND NOT is_expired AND (expires_at IS NULL OR expires_at > $1)),
       (SELECT COUNT(*) FROM inventory_items
         WHERE NOT is_claimed AND (expires_at IS NULL OR expires_at > $1))`

const ledgerDiscrepanciesQuery = `
SELECT a.id, a.request_balance, COALESCE(r.total, 0)
FROM accounts a
LEFT JOIN (
    SELECT account_id, SUM(delta) AS total
    FROM transaction_records
    GROUP BY account_id
) r ON r.account_id = a.id
WHERE a.request_balance <> COALESCE(r.total, 0)
ORDER BY a.id
LIMIT NULLIF($1, 0)`

// ReportRepository implements persistence.ReportRepository with plain SQL over pgx
type ReportRepository struct {
	db        *DB
	collector *database.MetricsCollector
	logger    coreport.Logger
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *DB, collector *database.MetricsCollector, logger coreport.Logger) persistence.ReportRepository {
	return &ReportRepository{db: db, collector: collector, logger: logger}
}

func (r *ReportRepository) wrap(operation string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	r.logger.Error("Report query failed", map[string]any{
		"operation": operation,
		"error":     err.Error(),
	})
	return fmt.Errorf("%w: %s: %s", errs.ErrDatabaseConnection, operation, err.Error())
}

// AccountTotals sums the positive and negative deltas of one account
func (r *ReportRepository) AccountTotals(ctx context.Context, accountID uint64) (entity.AccountTotals, error) {
	var totals entity.AccountTotals
	_, err := r.collector.MeasureQuery(ctx, "account_totals", func(ctx context.Context) (int64, error) {
		err := r.db.Pool.QueryRow(ctx, accountTotalsQuery, int64(accountID)).
			Scan(&totals.TotalEarned, &totals.TotalSpent, &totals.TransactionCount)
		return 1, err
	})
	if err != nil {
		return entity.AccountTotals{}, r.wrap("account totals", err)
	}
	return totals, nil
}

// SystemStats counts accounts, balances and what is still available at now
func (r *ReportRepository) SystemStats(ctx context.Context, now time.Time) (entity.SystemStats, error) {
	var stats entity.SystemStats
	_, err := r.collector.MeasureQuery(ctx, "system_stats", func(ctx context.Context) (int64, error) {
		err := r.db.Pool.QueryRow(ctx, systemStatsQuery, now).
			Scan(&stats.Accounts, &stats.TotalBalance, &stats.AvailableKeys, &stats.AvailableTokens)
		return 1, err
	})
	if err != nil {
		return entity.SystemStats{}, r.wrap("system stats", err)
	}
	return stats, nil
}

// LedgerDiscrepancies lists accounts whose balance differs from their ledger sum; limit 0 lists all
func (r *ReportRepository) LedgerDiscrepancies(ctx context.Context, limit int) ([]entity.LedgerDiscrepancy, error) {
	var out []entity.LedgerDiscrepancy
	_, err := r.collector.MeasureQuery(ctx, "ledger_discrepancies", func(ctx context.Context) (int64, error) {
		rows, err := r.db.Pool.Query(ctx, ledgerDiscrepanciesQuery, int64(max(limit, 0)))
		if err != nil {
			return 0, err
		}
		defer rows.Close()

		for rows.Next() {
			var d entity.LedgerDiscrepancy
			if err := rows.Scan(&d.AccountID, &d.Balance, &d.LedgerSum); err != nil {
				return int64(len(out)), err
			}
			out = append(out, d)
		}
		return int64(len(out)), rows.Err()
	})
	if err != nil {
		return nil, r.wrap("ledger discrepancies", err)
	}

	if len(out) > 0 {
		r.logger.Warn("Ledger discrepancies found", map[string]any{
			"accounts": len(out),
		})
	}
	return out, nil
}
