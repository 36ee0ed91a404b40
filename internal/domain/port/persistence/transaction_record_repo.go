package persistence

import (
	"context"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
)

// TransactionRecordRepository is the append-only ledger
type TransactionRecordRepository interface {
	// Append inserts a record and sets its ID. Records are never updated or deleted.
	Append(ctx context.Context, record *entity.TransactionRecord) error

	// ListByAccount returns the newest records for accountID
	ListByAccount(ctx context.Context, accountID uint64, limit int) ([]*entity.TransactionRecord, error)
}
