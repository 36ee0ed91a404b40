package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
)

// AccountRepository persists accounts and their balances
type AccountRepository interface {
	// GetByID retrieves an account without locking
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Account, error)

	// GetByIDForUpdate retrieves an account and locks its row until the transaction ends
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	// - ErrConcurrentModification: If the lock could not be taken (deadlock, lock timeout)
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Account, error)

	// GetByUsername retrieves an account by its unique username
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account has that username
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)

	// Create inserts a new account and sets its ID
	//
	// Possible errors:
	// - ErrDuplicateValue: If the username or email is taken
	// - ErrInvalidRole: If the role is outside the closed set
	Create(ctx context.Context, account *entity.Account) error

	// DebitBalance subtracts amount only while the balance covers it and returns the new balance
	//
	// Possible errors:
	// - ErrInsufficientBalance: If the balance is lower than amount at write time
	// - ErrAccountNotFound: If the account doesn't exist
	DebitBalance(ctx context.Context, id uint64, amount int64) (int64, error)

	// AddBalance applies delta unconditionally and returns the new balance
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	AddBalance(ctx context.Context, id uint64, delta int64) (int64, error)

	// UpdateExpiry stores a new expiry time and expired flag
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	UpdateExpiry(ctx context.Context, id uint64, expiry *time.Time, expired bool) error

	// SetActive enables or disables the account
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	SetActive(ctx context.Context, id uint64, active bool) error

	// Search matches username or email case-insensitively, newest first
	Search(ctx context.Context, query string, limit int) ([]*entity.Account, error)
}
