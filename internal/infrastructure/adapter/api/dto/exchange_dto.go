package dto

import "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"

// ExchangeRequest is the body of POST /api/v1/exchange. An omitted tokenCount means one item;
// an explicit zero is rejected.
type ExchangeRequest struct {
	TokenCount *int `json:"tokenCount"`
}

// Count resolves the requested number of items
func (r ExchangeRequest) Count() int {
	if r.TokenCount == nil {
		return 1
	}
	return *r.TokenCount
}

// ExchangeResponse lists the claimed token values in selection order
type ExchangeResponse struct {
	TokenValues []string `json:"tokenValues"`
	Cost        int64    `json:"cost"`
	NewBalance  int64    `json:"newBalance"`
}

// NewExchangeResponse maps an exchange result
func NewExchangeResponse(result *usecase.ExchangeResult) ExchangeResponse {
	return ExchangeResponse{
		TokenValues: result.TokenValues,
		Cost:        result.Cost,
		NewBalance:  result.NewBalance,
	}
}
