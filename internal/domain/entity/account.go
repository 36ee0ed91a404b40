package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
)

// Account holds a user's request balance and access state
type Account struct {
	ID            uint64
	Username      string
	Email         string
	Role          Role
	IsActive      bool
	ExpiryTime    *time.Time // nil means no expiry configured
	IsExpiredFlag bool       // lazily reconciled cache of ExpiryTime <= now
	CreatedAt     time.Time
	UpdatedAt     time.Time

	requestBalance int64
}

// NewAccount creates an active account with a zero balance
func NewAccount(username, email string, role Role, timeProvider coreport.TimeProvider) (*Account, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", errs.ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email %q is not valid", errs.ErrInvalidInput, email)
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Account{
		Username:  username,
		Email:     strings.ToLower(email),
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RestoreAccount rebuilds an account from storage
func RestoreAccount(a Account, requestBalance int64) *Account {
	a.requestBalance = requestBalance
	return &a
}

// RequestBalance returns the current credit count
func (a *Account) RequestBalance() int64 {
	return a.requestBalance
}

// CanAfford reports whether a user-path debit of cost keeps the balance non-negative
func (a *Account) CanAfford(cost int64) bool {
	return cost >= 0 && a.requestBalance >= cost
}

// Debit removes cost from the balance; user paths never go below zero
func (a *Account) Debit(cost int64) error {
	if cost <= 0 {
		return errs.ErrInvalidAmount
	}
	if !a.CanAfford(cost) {
		return errs.NewInsufficientBalanceError(a.ID, cost, a.requestBalance)
	}
	a.requestBalance -= cost
	return nil
}

// Credit adds a positive amount
func (a *Account) Credit(amount int64) error {
	if amount <= 0 {
		return errs.ErrInvalidAmount
	}
	a.requestBalance += amount
	return nil
}

// Adjust applies an administrative delta without a floor
func (a *Account) Adjust(delta int64) error {
	if delta == 0 {
		return errs.ErrInvalidAmount
	}
	a.requestBalance += delta
	return nil
}

// ExtendExpiry moves the expiry by deltaDays from the current expiry, or from now when none is set.
// The expired flag is always cleared.
func (a *Account) ExtendExpiry(deltaDays int, now time.Time) time.Time {
	base := now
	if a.ExpiryTime != nil {
		base = *a.ExpiryTime
	}
	next := base.Add(time.Duration(deltaDays) * 24 * time.Hour)
	a.ExpiryTime = &next
	a.IsExpiredFlag = false
	return next
}
