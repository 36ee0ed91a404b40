package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/model"
)

// TransactionRecordRepository implements the append-only ledger using GORM
type TransactionRecordRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRecordRepository creates a new TransactionRecordRepository instance
func NewTransactionRecordRepository(db *gorm.DB, logger coreport.Logger) *TransactionRecordRepository {
	return &TransactionRecordRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Append inserts a ledger record
func (r *TransactionRecordRepository) Append(ctx context.Context, record *entity.TransactionRecord) error {
	m := model.TransactionRecord{
		AccountID:   record.AccountID,
		Delta:       record.Delta,
		Description: record.Description,
		CreatedAt:   record.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return handleDatabaseError(r.logger, r.errorClassifier, "appending transaction record", err,
			errs.ErrAccountNotFound, map[string]any{"account_id": record.AccountID})
	}
	record.ID = m.ID

	r.logger.Debug("Transaction record appended", map[string]any{
		"record_id":  m.ID,
		"account_id": m.AccountID,
		"delta":      m.Delta,
	})
	return nil
}

// ListByAccount returns records newest first; limit 0 returns all
func (r *TransactionRecordRepository) ListByAccount(ctx context.Context, accountID uint64, limit int) ([]*entity.TransactionRecord, error) {
	tx := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var rows []model.TransactionRecord
	if err := tx.Find(&rows).Error; err != nil {
		return nil, handleDatabaseError(r.logger, r.errorClassifier, "listing transaction records", err,
			errs.ErrAccountNotFound, map[string]any{"account_id": accountID})
	}

	records := make([]*entity.TransactionRecord, 0, len(rows))
	for _, m := range rows {
		records = append(records, &entity.TransactionRecord{
			ID:          m.ID,
			AccountID:   m.AccountID,
			Delta:       m.Delta,
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
		})
	}
	return records, nil
}

// DailyCodeRepository stores the single daily code row using GORM
type DailyCodeRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewDailyCodeRepository creates a new DailyCodeRepository instance
func NewDailyCodeRepository(db *gorm.DB, logger coreport.Logger) *DailyCodeRepository {
	return &DailyCodeRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Get returns the current code
func (r *DailyCodeRepository) Get(ctx context.Context) (*entity.DailyCode, error) {
	var m model.DailyCode
	if err := r.db.WithContext(ctx).First(&m, entity.DailyCodeID).Error; err != nil {
		if isNotFound(err) {
			return nil, errs.ErrDailyCodeNotSet
		}
		return nil, handleDatabaseError(r.logger, r.errorClassifier, "reading daily code", err,
			errs.ErrDailyCodeNotSet, nil)
	}
	return &entity.DailyCode{
		Code:      m.Code,
		UpdatedBy: m.UpdatedBy,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// Upsert writes the single row with ON CONFLICT (id) DO UPDATE
func (r *DailyCodeRepository) Upsert(ctx context.Context, code *entity.DailyCode) error {
	m := model.DailyCode{
		ID:        entity.DailyCodeID,
		Code:      code.Code,
		UpdatedBy: code.UpdatedBy,
		UpdatedAt: code.UpdatedAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "updated_by", "updated_at"}),
		}).
		Create(&m).Error
	if err != nil {
		return handleDatabaseError(r.logger, r.errorClassifier, "writing daily code", err,
			errs.ErrDailyCodeNotSet, nil)
	}
	return nil
}
