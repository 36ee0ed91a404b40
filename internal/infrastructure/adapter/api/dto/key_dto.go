package dto

import (
	"time"

	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
)

// RedeemRequest is the body of POST /api/v1/keys/redeem
type RedeemRequest struct {
	KeyValue string `json:"keyValue"`
}

// RedeemResponse describes the credit a key granted
type RedeemResponse struct {
	CreditAmount int64  `json:"creditAmount"`
	Description  string `json:"description,omitempty"`
	NewBalance   int64  `json:"newBalance"`
}

// NewRedeemResponse maps a redemption result
func NewRedeemResponse(result *usecase.RedemptionResult) RedeemResponse {
	return RedeemResponse{
		CreditAmount: result.CreditAmount,
		Description:  result.Description,
		NewBalance:   result.NewBalance,
	}
}

// MintKeyRequest is the body of POST /api/v1/admin/keys
type MintKeyRequest struct {
	CreditAmount int64  `json:"creditAmount"`
	DurationDays int    `json:"durationDays"`
	Description  string `json:"description"`
	CustomValue  string `json:"customValue"`
}

// KeyResponse is a redeemable key as shown to admins
type KeyResponse struct {
	ID           uint64     `json:"id"`
	KeyValue     string     `json:"keyValue"`
	KeyType      string     `json:"keyType"`
	CreditAmount int64      `json:"creditAmount"`
	IsUsed       bool       `json:"isUsed"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	Description  string     `json:"description,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// MintKeyResponse wraps the minted key
type MintKeyResponse struct {
	Key KeyResponse `json:"key"`
}

// NewKeyResponse maps a key entity
func NewKeyResponse(key *entity.RedeemableKey) KeyResponse {
	return KeyResponse{
		ID:           key.ID,
		KeyValue:     key.Value,
		KeyType:      string(key.KeyType),
		CreditAmount: key.CreditAmount,
		IsUsed:       key.IsUsed,
		ExpiresAt:    key.ExpiresAt,
		Description:  key.Description,
		CreatedAt:    key.CreatedAt,
	}
}
