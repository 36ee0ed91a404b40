package dto

import (
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
)

// AdjustBalanceRequest is the body of POST /api/v1/admin/accounts/:id/balance
type AdjustBalanceRequest struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

// AdjustBalanceResponse carries the balance after the adjustment
type AdjustBalanceResponse struct {
	NewBalance int64 `json:"newBalance"`
}

// AdjustExpiryRequest is the body of POST /api/v1/admin/accounts/:id/expiry
type AdjustExpiryRequest struct {
	DeltaDays int    `json:"deltaDays"`
	Reason    string `json:"reason"`
}

// AdjustExpiryResponse carries the new expiry
type AdjustExpiryResponse struct {
	NewExpiryTime time.Time `json:"newExpiryTime"`
}

// SetAccountStatusRequest is the body of PATCH /api/v1/admin/accounts/:id/status
type SetAccountStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// IngestResponse reports how many non-blank lines were submitted for insertion
type IngestResponse struct {
	InsertedCount int `json:"insertedCount"`
}

// DailyCodeRequest is the body of PUT /api/v1/admin/daily-code
type DailyCodeRequest struct {
	Code string `json:"code"`
}

// DailyCodeResponse is the current daily code
type DailyCodeResponse struct {
	Code      string    `json:"code"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDailyCodeResponse maps a daily code
func NewDailyCodeResponse(dc *entity.DailyCode) DailyCodeResponse {
	return DailyCodeResponse{Code: dc.Code, UpdatedAt: dc.UpdatedAt}
}

// StatsResponse is the admin overview
type StatsResponse struct {
	Accounts        int64 `json:"accounts"`
	TotalBalance    int64 `json:"totalBalance"`
	AvailableKeys   int64 `json:"availableKeys"`
	AvailableTokens int64 `json:"availableTokens"`
}

// NewStatsResponse maps system statistics
func NewStatsResponse(s entity.SystemStats) StatsResponse {
	return StatsResponse{
		Accounts:        s.Accounts,
		TotalBalance:    s.TotalBalance,
		AvailableKeys:   s.AvailableKeys,
		AvailableTokens: s.AvailableTokens,
	}
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
}
