package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/model"
)

// AccountRepository implements persistence.AccountRepository using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func accountToEntity(m *model.Account) *entity.Account {
	return entity.RestoreAccount(entity.Account{
		ID:            m.ID,
		Username:      m.Username,
		Email:         m.Email,
		Role:          entity.Role(m.Role),
		IsActive:      m.IsActive,
		ExpiryTime:    m.ExpiryTime,
		IsExpiredFlag: m.IsExpired,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, m.RequestBalance)
}

func (r *AccountRepository) handleError(operation string, err error, accountID uint64) error {
	return handleDatabaseError(r.logger, r.errorClassifier, operation, err, errs.ErrAccountNotFound,
		map[string]any{"account_id": accountID})
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	var m model.Account
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, r.handleError("getting account", err, id)
	}
	return accountToEntity(&m), nil
}

// GetByIDForUpdate retrieves an account with SELECT ... FOR UPDATE
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Account, error) {
	r.logger.Debug("Locking account row", map[string]any{
		"account_id": id,
	})

	var m model.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		return nil, r.handleError("locking account", err, id)
	}
	return accountToEntity(&m), nil
}

// GetByUsername retrieves an account by its username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var m model.Account
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error
	if err != nil {
		return nil, handleDatabaseError(r.logger, r.errorClassifier, "getting account by username", err,
			errs.ErrAccountNotFound, map[string]any{"username": username})
	}
	return accountToEntity(&m), nil
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	role, err := entity.ParseRole(string(account.Role))
	if err != nil {
		return err
	}

	m := model.Account{
		Username:       account.Username,
		Email:          account.Email,
		Role:           string(role),
		IsActive:       account.IsActive,
		RequestBalance: account.RequestBalance(),
		ExpiryTime:     account.ExpiryTime,
		IsExpired:      account.IsExpiredFlag,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return handleDatabaseError(r.logger, r.errorClassifier, "creating account", err,
			errs.ErrAccountNotFound, map[string]any{"username": account.Username})
	}
	account.ID = m.ID

	r.logger.Info("Account created", map[string]any{
		"account_id": m.ID,
		"username":   m.Username,
		"role":       m.Role,
	})
	return nil
}

// DebitBalance subtracts amount with a conditional UPDATE so the balance never goes negative
func (r *AccountRepository) DebitBalance(ctx context.Context, id uint64, amount int64) (int64, error) {
	var m model.Account
	result := r.db.WithContext(ctx).
		Model(&m).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "request_balance"}}}).
		Where("id = ? AND request_balance >= ?", id, amount).
		Updates(map[string]any{
			"request_balance": gorm.Expr("request_balance - ?", amount),
			"updated_at":      r.timeProvider.Now(),
		})
	if result.Error != nil {
		return 0, r.handleError("debiting balance", result.Error, id)
	}

	if result.RowsAffected == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}
		r.logger.Warn("Conditional debit matched no row", map[string]any{
			"account_id": id,
			"amount":     amount,
			"balance":    current.RequestBalance(),
		})
		return 0, errs.NewInsufficientBalanceError(id, amount, current.RequestBalance())
	}

	return m.RequestBalance, nil
}

// AddBalance applies delta and returns the new balance
func (r *AccountRepository) AddBalance(ctx context.Context, id uint64, delta int64) (int64, error) {
	var m model.Account
	result := r.db.WithContext(ctx).
		Model(&m).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "request_balance"}}}).
		Where("id = ?", id).
		Updates(map[string]any{
			"request_balance": gorm.Expr("request_balance + ?", delta),
			"updated_at":      r.timeProvider.Now(),
		})
	if result.Error != nil {
		return 0, r.handleError("adjusting balance", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return 0, errs.ErrAccountNotFound
	}
	return m.RequestBalance, nil
}

// UpdateExpiry stores a new expiry time and flag
func (r *AccountRepository) UpdateExpiry(ctx context.Context, id uint64, expiry *time.Time, expired bool) error {
	return r.updateColumns(ctx, "updating expiry", id, map[string]any{
		"expiry_time": expiry,
		"is_expired":  expired,
	})
}

// SetActive enables or disables the account
func (r *AccountRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	return r.updateColumns(ctx, "setting active flag", id, map[string]any{
		"is_active": active,
	})
}

func (r *AccountRepository) updateColumns(ctx context.Context, operation string, id uint64, columns map[string]any) error {
	columns["updated_at"] = r.timeProvider.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return r.handleError(operation, result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}

// Search matches username or email with ILIKE, newest first
func (r *AccountRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Account, error) {
	tx := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if q := strings.TrimSpace(query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		tx = tx.Where("username ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var rows []model.Account
	if err := tx.Find(&rows).Error; err != nil {
		return nil, handleDatabaseError(r.logger, r.errorClassifier, "searching accounts", err,
			errs.ErrAccountNotFound, map[string]any{"query": query})
	}

	accounts := make([]*entity.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, accountToEntity(&rows[i]))
	}
	return accounts, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// isNotFound reports whether err is gorm's not-found sentinel
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
