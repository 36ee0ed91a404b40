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

// InventoryRepository implements persistence.InventoryRepository using GORM
type InventoryRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewInventoryRepository creates a new InventoryRepository instance
func NewInventoryRepository(db *gorm.DB, logger coreport.Logger) *InventoryRepository {
	return &InventoryRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func inventoryToEntity(m *model.InventoryItem) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:        m.ID,
		Value:     m.Value,
		IsClaimed: m.IsClaimed,
		ClaimedBy: m.ClaimedBy,
		ClaimedAt: m.ClaimedAt,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

func (r *InventoryRepository) handleError(operation string, err error, fields map[string]any) error {
	return handleDatabaseError(r.logger, r.errorClassifier, operation, err, errs.ErrNotFound, fields)
}

// LockAvailable selects the oldest available items FOR UPDATE SKIP LOCKED.
// Concurrent exchanges therefore never wait on each other's candidate rows.
func (r *InventoryRepository) LockAvailable(ctx context.Context, limit int, now time.Time) ([]*entity.InventoryItem, error) {
	var rows []model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("is_claimed = ? AND (expires_at IS NULL OR expires_at > ?)", false, now).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Find(&rows).Error
	if err != nil {
		return nil, r.handleError("locking available inventory", err, map[string]any{"limit": limit})
	}

	items := make([]*entity.InventoryItem, 0, len(rows))
	for i := range rows {
		items = append(items, inventoryToEntity(&rows[i]))
	}

	r.logger.Debug("Locked inventory candidates", map[string]any{
		"requested": limit,
		"locked":    len(items),
	})
	return items, nil
}

// MarkClaimed flips only rows that are still unclaimed
func (r *InventoryRepository) MarkClaimed(ctx context.Context, ids []uint64, accountID uint64, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&model.InventoryItem{}).
		Where("id IN ? AND is_claimed = ?", ids, false).
		Updates(map[string]any{
			"is_claimed": true,
			"claimed_by": accountID,
			"claimed_at": now,
		})
	if result.Error != nil {
		return 0, r.handleError("claiming inventory", result.Error, map[string]any{
			"account_id": accountID,
			"items":      len(ids),
		})
	}
	return result.RowsAffected, nil
}

// InsertBatch inserts with ON CONFLICT (value) DO NOTHING and returns the inserted count
func (r *InventoryRepository) InsertBatch(ctx context.Context, values []string, expiresAt *time.Time, now time.Time) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}

	rows := make([]model.InventoryItem, 0, len(values))
	for _, v := range values {
		rows = append(rows, model.InventoryItem{
			Value:     v,
			ExpiresAt: expiresAt,
			CreatedAt: now,
		})
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "value"}},
			DoNothing: true,
		}).
		Create(&rows)
	if result.Error != nil {
		return 0, r.handleError("inserting inventory batch", result.Error, map[string]any{
			"batch_size": len(values),
		})
	}
	return result.RowsAffected, nil
}

// ListClaimedBy returns the newest claims of accountID
func (r *InventoryRepository) ListClaimedBy(ctx context.Context, accountID uint64, limit int) ([]*entity.InventoryItem, error) {
	tx := r.db.WithContext(ctx).
		Where("claimed_by = ?", accountID).
		Order("claimed_at DESC, id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var rows []model.InventoryItem
	if err := tx.Find(&rows).Error; err != nil {
		return nil, r.handleError("listing claimed inventory", err, map[string]any{"account_id": accountID})
	}

	items := make([]*entity.InventoryItem, 0, len(rows))
	for i := range rows {
		items = append(items, inventoryToEntity(&rows[i]))
	}
	return items, nil
}
