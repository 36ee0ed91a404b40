package usecase

import (
	"context"
)

// ExchangeRequest converts request units into inventory items.
// TokenCount must be positive.
type ExchangeRequest struct {
	AccountID  uint64
	TokenCount int
}

// ExchangeResult lists claimed token values in selection order
type ExchangeResult struct {
	TokenValues []string
	Cost        int64
	NewBalance  int64
}

// ExchangeUseCase is the Exchange Engine
type ExchangeUseCase interface {
	Exchange(ctx context.Context, req ExchangeRequest) (*ExchangeResult, error)
}
