package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/model"
)

// KeyRepository implements persistence.KeyRepository using GORM
type KeyRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewKeyRepository creates a new KeyRepository instance
func NewKeyRepository(db *gorm.DB, logger coreport.Logger) *KeyRepository {
	return &KeyRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func keyToEntity(m *model.RedeemableKey) *entity.RedeemableKey {
	return &entity.RedeemableKey{
		ID:            m.ID,
		Value:         m.Value,
		CreditAmount:  m.CreditAmount,
		KeyType:       entity.KeyType(m.KeyType),
		IsUsed:        m.IsUsed,
		UsedBy:        m.UsedBy,
		UsedAt:        m.UsedAt,
		ExpiresAt:     m.ExpiresAt,
		IsExpiredFlag: m.IsExpired,
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
	}
}

// GetByValueForUpdate looks the key up by exact value and locks it
func (r *KeyRepository) GetByValueForUpdate(ctx context.Context, value string) (*entity.RedeemableKey, error) {
	var m model.RedeemableKey
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("value = ?", value).
		First(&m).Error
	if err != nil {
		return nil, handleDatabaseError(r.logger, r.errorClassifier, "locking key", err,
			errs.ErrKeyNotFound, map[string]any{"key_value": value})
	}
	return keyToEntity(&m), nil
}

// MarkUsed is a compare-and-swap on is_used
func (r *KeyRepository) MarkUsed(ctx context.Context, keyID, accountID uint64, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.RedeemableKey{}).
		Where("id = ? AND is_used = ?", keyID, false).
		Updates(map[string]any{
			"is_used": true,
			"used_by": accountID,
			"used_at": now,
		})
	if result.Error != nil {
		return handleDatabaseError(r.logger, r.errorClassifier, "marking key used", result.Error,
			errs.ErrKeyNotFound, map[string]any{"key_id": keyID})
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Key was used concurrently", map[string]any{
			"key_id":     keyID,
			"account_id": accountID,
		})
		return errs.ErrKeyAlreadyUsed
	}
	return nil
}

// MarkExpired persists the expired flag; repeating it is harmless
func (r *KeyRepository) MarkExpired(ctx context.Context, keyID uint64) error {
	err := r.db.WithContext(ctx).
		Model(&model.RedeemableKey{}).
		Where("id = ?", keyID).
		Update("is_expired", true).Error
	if err != nil {
		return handleDatabaseError(r.logger, r.errorClassifier, "marking key expired", err,
			errs.ErrKeyNotFound, map[string]any{"key_id": keyID})
	}
	return nil
}

// Create inserts a key
func (r *KeyRepository) Create(ctx context.Context, key *entity.RedeemableKey) error {
	m := model.RedeemableKey{
		Value:        key.Value,
		CreditAmount: key.CreditAmount,
		KeyType:      string(key.KeyType),
		IsUsed:       key.IsUsed,
		UsedBy:       key.UsedBy,
		UsedAt:       key.UsedAt,
		ExpiresAt:    key.ExpiresAt,
		IsExpired:    key.IsExpiredFlag,
		Description:  key.Description,
		CreatedAt:    key.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return handleDatabaseError(r.logger, r.errorClassifier, "creating key", err,
			errs.ErrKeyNotFound, map[string]any{"key_type": m.KeyType})
	}
	key.ID = m.ID
	return nil
}
