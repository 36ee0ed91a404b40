package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

// KeyType records how a key value was produced
type KeyType string

const (
	KeyTypeRegular KeyType = "regular"
	KeyTypeCustom  KeyType = "custom"
)

// Limits applied when minting keys
const (
	MaxKeyCreditAmount    = 100000
	MaxKeyDescriptionSize = 200
)

// RedeemableKey is a one-time code that credits request units
type RedeemableKey struct {
	ID            uint64
	Value         string
	CreditAmount  int64
	KeyType       KeyType
	IsUsed        bool
	UsedBy        *uint64
	UsedAt        *time.Time
	ExpiresAt     *time.Time
	IsExpiredFlag bool
	Description   string
	CreatedAt     time.Time
}

// IsTimeExpired reports whether the authoritative expiry timestamp has passed
func (k *RedeemableKey) IsTimeExpired(now time.Time) bool {
	return k.ExpiresAt != nil && !k.ExpiresAt.After(now)
}

// CheckRedeemable applies the redemption checks in order: used, flagged expired, time expired
func (k *RedeemableKey) CheckRedeemable(now time.Time) error {
	switch {
	case k.IsUsed:
		return errs.NewKeyRedemptionError(k.Value, errs.ErrKeyAlreadyUsed)
	case k.IsExpiredFlag, k.IsTimeExpired(now):
		return errs.NewKeyRedemptionError(k.Value, errs.ErrKeyExpired)
	}
	return nil
}

// IsAvailable reports whether the key could still be redeemed at now
func (k *RedeemableKey) IsAvailable(now time.Time) bool {
	return k.CheckRedeemable(now) == nil
}

// LedgerDescription is the audit text recorded when the key is redeemed
func (k *RedeemableKey) LedgerDescription() string {
	desc := k.Description
	if desc == "" {
		desc = "no description"
	}
	return "VIP key: " + k.Value + " - " + desc
}
