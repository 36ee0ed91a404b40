package entity

import "time"

// ExpiryState is the display state of an account's time-limited access
type ExpiryState string

const (
	ExpiryStateNone    ExpiryState = "none"
	ExpiryStateActive  ExpiryState = "active"
	ExpiryStateExpired ExpiryState = "expired"
)

// IsAccountExpired is the account expiry policy.
// Accounts without an expiry time are never expired.
func IsAccountExpired(account *Account, now time.Time) bool {
	if account == nil || account.ExpiryTime == nil {
		return false
	}
	return account.IsExpiredFlag || !account.ExpiryTime.After(now)
}

// AccountExpiryState distinguishes "no expiry configured" from active and expired
func AccountExpiryState(account *Account, now time.Time) ExpiryState {
	switch {
	case account == nil || account.ExpiryTime == nil:
		return ExpiryStateNone
	case IsAccountExpired(account, now):
		return ExpiryStateExpired
	default:
		return ExpiryStateActive
	}
}
