package persistence

import (
	"context"
)

// UnitOfWork coordinates one atomic, isolated store transaction across repositories.
// Repositories obtained with a transactional context participate in that transaction;
// with a plain context they run standalone statements.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	GetAccountRepository(ctx context.Context) AccountRepository
	GetInventoryRepository(ctx context.Context) InventoryRepository
	GetKeyRepository(ctx context.Context) KeyRepository
	GetTransactionRecordRepository(ctx context.Context) TransactionRecordRepository
	GetDailyCodeRepository(ctx context.Context) DailyCodeRepository
}
