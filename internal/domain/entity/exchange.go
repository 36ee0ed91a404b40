package entity

import (
	"fmt"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

// ExchangeRate is the number of request units one inventory item costs
const ExchangeRate int64 = 50

// DefaultMaxTokensPerExchange bounds a single exchange to 10000 request units
const DefaultMaxTokensPerExchange = 200

// ExchangeCost validates tokenCount against maxTokens and returns its price
func ExchangeCost(tokenCount, maxTokens int) (int64, error) {
	if tokenCount <= 0 {
		return 0, fmt.Errorf("%w: token count must be positive, got %d", errs.ErrInvalidAmount, tokenCount)
	}
	if maxTokens > 0 && tokenCount > maxTokens {
		return 0, fmt.Errorf("%w: token count %d exceeds the limit of %d", errs.ErrInvalidAmount, tokenCount, maxTokens)
	}
	return int64(tokenCount) * ExchangeRate, nil
}

// ExchangeDescription is the ledger text for an exchange of tokenCount items
func ExchangeDescription(tokenCount int) string {
	return fmt.Sprintf("Exchange %d token(s)", tokenCount)
}
