package dto

import (
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
)

// AccountResponse is the public shape of an account
type AccountResponse struct {
	ID             uint64     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	IsActive       bool       `json:"isActive"`
	RequestBalance int64      `json:"requestBalance"`
	ExpiryTime     *time.Time `json:"expiryTime,omitempty"`
	ExpiryState    string     `json:"expiryState,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// TotalsResponse aggregates an account's ledger
type TotalsResponse struct {
	TotalEarned      int64 `json:"totalEarned"`
	TotalSpent       int64 `json:"totalSpent"`
	TransactionCount int64 `json:"transactionCount"`
}

// TransactionRecordResponse is one ledger row
type TransactionRecordResponse struct {
	ID          uint64    `json:"id"`
	Delta       int64     `json:"delta"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ClaimedTokenResponse is an inventory item owned by the caller
type ClaimedTokenResponse struct {
	TokenValue string     `json:"tokenValue"`
	ClaimedAt  *time.Time `json:"claimedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// DashboardResponse is the account holder's own view
type DashboardResponse struct {
	Account            AccountResponse             `json:"account"`
	Totals             TotalsResponse              `json:"totals"`
	RecentTransactions []TransactionRecordResponse `json:"recentTransactions"`
	ClaimedTokens      []ClaimedTokenResponse      `json:"claimedTokens"`
}

// AccountDetailsResponse is the admin view of one account
type AccountDetailsResponse struct {
	Account            AccountResponse             `json:"account"`
	Totals             TotalsResponse              `json:"totals"`
	RecentTransactions []TransactionRecordResponse `json:"recentTransactions"`
}

// AccountListResponse is the result of an account search
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// NewAccountResponse maps an account. An empty state omits expiryState.
func NewAccountResponse(account *entity.Account, state entity.ExpiryState) AccountResponse {
	return AccountResponse{
		ID:             account.ID,
		Username:       account.Username,
		Email:          account.Email,
		Role:           account.Role.String(),
		IsActive:       account.IsActive,
		RequestBalance: account.RequestBalance(),
		ExpiryTime:     account.ExpiryTime,
		ExpiryState:    string(state),
		CreatedAt:      account.CreatedAt,
	}
}

// NewDashboardResponse maps a dashboard
func NewDashboardResponse(d *usecase.Dashboard) DashboardResponse {
	tokens := make([]ClaimedTokenResponse, 0, len(d.ClaimedTokens))
	for _, item := range d.ClaimedTokens {
		tokens = append(tokens, ClaimedTokenResponse{
			TokenValue: item.Value,
			ClaimedAt:  item.ClaimedAt,
			ExpiresAt:  item.ExpiresAt,
		})
	}
	return DashboardResponse{
		Account:            NewAccountResponse(d.Account, d.ExpiryState),
		Totals:             newTotalsResponse(d.Totals),
		RecentTransactions: newRecordResponses(d.RecentTransactions),
		ClaimedTokens:      tokens,
	}
}

// NewAccountDetailsResponse maps the admin account view
func NewAccountDetailsResponse(d *usecase.AccountDetails) AccountDetailsResponse {
	return AccountDetailsResponse{
		Account:            NewAccountResponse(d.Account, d.ExpiryState),
		Totals:             newTotalsResponse(d.Totals),
		RecentTransactions: newRecordResponses(d.RecentTransactions),
	}
}

// NewAccountListResponse maps search results
func NewAccountListResponse(accounts []*entity.Account) AccountListResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, NewAccountResponse(a, ""))
	}
	return AccountListResponse{Accounts: out}
}

func newTotalsResponse(t entity.AccountTotals) TotalsResponse {
	return TotalsResponse{
		TotalEarned:      t.TotalEarned,
		TotalSpent:       t.TotalSpent,
		TransactionCount: t.TransactionCount,
	}
}

func newRecordResponses(records []*entity.TransactionRecord) []TransactionRecordResponse {
	out := make([]TransactionRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, TransactionRecordResponse{
			ID:          r.ID,
			Delta:       r.Delta,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out
}
