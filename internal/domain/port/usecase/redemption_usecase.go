package usecase

import (
	"context"
)

// RedemptionResult describes a credited key
type RedemptionResult struct {
	CreditAmount int64
	Description  string
	NewBalance   int64
}

// RedemptionUseCase is the Key Redemption Engine
type RedemptionUseCase interface {
	// Redeem consumes keyValue for accountID. A key credits exactly once.
	Redeem(ctx context.Context, accountID uint64, keyValue string) (*RedemptionResult, error)
}
