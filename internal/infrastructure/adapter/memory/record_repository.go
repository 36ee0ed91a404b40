package memory

import (
	"context"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

// TransactionRecordRepository implements persistence.TransactionRecordRepository
type TransactionRecordRepository struct {
	store *Store
}

func (r *TransactionRecordRepository) Append(ctx context.Context, record *entity.TransactionRecord) error {
	return r.store.update(ctx, func(st *state) error {
		record.ID = st.id()
		st.records = append(st.records, *record)
		return nil
	})
}

// ListByAccount walks the append-only slice backwards, so results are newest first
func (r *TransactionRecordRepository) ListByAccount(ctx context.Context, accountID uint64, limit int) ([]*entity.TransactionRecord, error) {
	var out []*entity.TransactionRecord
	err := r.store.view(ctx, func(st *state) error {
		for i := len(st.records) - 1; i >= 0; i-- {
			if limit > 0 && len(out) == limit {
				break
			}
			if rec := st.records[i]; rec.AccountID == accountID {
				out = append(out, &rec)
			}
		}
		return nil
	})
	return out, err
}

// DailyCodeRepository implements persistence.DailyCodeRepository
type DailyCodeRepository struct {
	store *Store
}

func (r *DailyCodeRepository) Get(ctx context.Context) (*entity.DailyCode, error) {
	var out *entity.DailyCode
	err := r.store.view(ctx, func(st *state) error {
		if st.dailyCode == nil {
			return errs.ErrDailyCodeNotSet
		}
		dc := *st.dailyCode
		out = &dc
		return nil
	})
	return out, err
}

func (r *DailyCodeRepository) Upsert(ctx context.Context, code *entity.DailyCode) error {
	return r.store.update(ctx, func(st *state) error {
		dc := *code
		st.dailyCode = &dc
		return nil
	})
}
