package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

// TransactionRecord is an append-only audit row for a balance delta.
// A zero delta is a non-monetary audit note.
type TransactionRecord struct {
	ID          uint64
	AccountID   uint64
	Delta       int64
	Description string
	CreatedAt   time.Time
}

// NewTransactionRecord validates and builds a record for accountID
func NewTransactionRecord(accountID uint64, delta int64, description string, now time.Time) (*TransactionRecord, error) {
	if accountID == 0 {
		return nil, fmt.Errorf("%w: account id is required", errs.ErrInvalidInput)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", errs.ErrInvalidInput)
	}
	return &TransactionRecord{
		AccountID:   accountID,
		Delta:       delta,
		Description: description,
		CreatedAt:   now,
	}, nil
}

// AccountTotals aggregates an account's ledger rows
type AccountTotals struct {
	TotalEarned      int64 // sum of positive deltas
	TotalSpent       int64 // sum of negative deltas, reported as a negative number
	TransactionCount int64
}

// Net is the sum of all deltas
func (t AccountTotals) Net() int64 {
	return t.TotalEarned + t.TotalSpent
}

// SystemStats is the admin overview
type SystemStats struct {
	Accounts        int64
	TotalBalance    int64
	AvailableKeys   int64
	AvailableTokens int64
}

// LedgerDiscrepancy is an account whose balance differs from its ledger sum
type LedgerDiscrepancy struct {
	AccountID uint64
	Balance   int64
	LedgerSum int64
}
