package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidInput           = 4000
	CodeInsufficientBalance    = 4001
	CodeInvalidAmount          = 4002
	CodeInvalidKeyFormat       = 4003
	CodeInventoryExhausted     = 4004
	CodeKeyAlreadyUsed         = 4005
	CodeKeyExpired             = 4006
	CodeEmptyUpload            = 4007
	CodeInvalidRole            = 4008
	CodeUnauthorized           = 4010
	CodeForbidden              = 4030
	CodeAccountInactive        = 4031
	CodeAccountExpired         = 4032
	CodeAdminRequired          = 4033
	CodeNotFound               = 4040
	CodeAccountNotFound        = 4041
	CodeKeyNotFound            = 4042
	CodeDailyCodeNotSet        = 4043
	CodeConflict               = 4090
	CodeConcurrentModification = 4091
	CodeDuplicateValue         = 4092

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeDatabaseConnection = 5001
)

// Kind is the taxonomy an error belongs to
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInvalidInput Kind = "invalid_input"
	KindInternal     Kind = "internal"
)

// Taxonomy roots. Every specific error below wraps exactly one of them.
var (
	// ErrUnauthorized is returned when there is no valid principal
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the principal lacks a role or is inactive
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a key, account or item is absent
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when the current state forbids the mutation
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput is returned for malformed amounts, key formats or uploads
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal is returned for unexpected server-side failures
	ErrInternal = errors.New("internal error")
)

var (
	// ErrAccountInactive is returned when an inactive account calls a user operation
	ErrAccountInactive = fmt.Errorf("%w: account is inactive", ErrForbidden)

	// ErrAccountExpired is returned when an account's time-limited access has lapsed
	ErrAccountExpired = fmt.Errorf("%w: account access has expired", ErrForbidden)

	// ErrAdminRequired is returned when a non-admin calls an admin operation
	ErrAdminRequired = fmt.Errorf("%w: admin role required", ErrForbidden)

	// ErrAccountNotFound is returned when the account does not exist
	ErrAccountNotFound = fmt.Errorf("%w: account", ErrNotFound)

	// ErrKeyNotFound is returned when no key has the submitted value
	ErrKeyNotFound = fmt.Errorf("%w: key", ErrNotFound)

	// ErrDailyCodeNotSet is returned when no daily code has been configured
	ErrDailyCodeNotSet = fmt.Errorf("%w: daily code is not set", ErrNotFound)

	// ErrInsufficientBalance is returned when the balance cannot cover an exchange
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", ErrConflict)

	// ErrInventoryExhausted is returned when fewer unclaimed items exist than requested
	ErrInventoryExhausted = fmt.Errorf("%w: inventory exhausted", ErrConflict)

	// ErrKeyAlreadyUsed is returned when the key has been redeemed before
	ErrKeyAlreadyUsed = fmt.Errorf("%w: key already used", ErrConflict)

	// ErrKeyExpired is returned when the key is flagged or time expired
	ErrKeyExpired = fmt.Errorf("%w: key expired", ErrConflict)

	// ErrConcurrentModification is returned when a concurrent unit won the race; safe to retry
	ErrConcurrentModification = fmt.Errorf("%w: concurrent modification", ErrConflict)

	// ErrDuplicateValue is returned when a unique value already exists
	ErrDuplicateValue = fmt.Errorf("%w: value already exists", ErrConflict)

	// ErrInvalidAmount is returned for zero, negative or out-of-range amounts
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrInvalidInput)

	// ErrInvalidKeyFormat is returned when a key value does not match VIP-XXXXXX-XXXXXX
	ErrInvalidKeyFormat = fmt.Errorf("%w: invalid key format", ErrInvalidInput)

	// ErrEmptyUpload is returned when an inventory upload has no usable lines
	ErrEmptyUpload = fmt.Errorf("%w: upload contains no tokens", ErrInvalidInput)

	// ErrInvalidRole is returned when a role is not one of user, admin
	ErrInvalidRole = fmt.Errorf("%w: invalid role", ErrInvalidInput)

	// ErrDatabaseConnection is returned when the store cannot be reached
	ErrDatabaseConnection = fmt.Errorf("%w: database connection error", ErrInternal)
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInventoryExhausted):
		return CodeInventoryExhausted
	case errors.Is(err, ErrKeyAlreadyUsed):
		return CodeKeyAlreadyUsed
	case errors.Is(err, ErrKeyExpired):
		return CodeKeyExpired
	case errors.Is(err, ErrConcurrentModification):
		return CodeConcurrentModification
	case errors.Is(err, ErrDuplicateValue):
		return CodeDuplicateValue
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidKeyFormat):
		return CodeInvalidKeyFormat
	case errors.Is(err, ErrEmptyUpload):
		return CodeEmptyUpload
	case errors.Is(err, ErrInvalidRole):
		return CodeInvalidRole
	case errors.Is(err, ErrAccountInactive):
		return CodeAccountInactive
	case errors.Is(err, ErrAccountExpired):
		return CodeAccountExpired
	case errors.Is(err, ErrAdminRequired):
		return CodeAdminRequired
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrKeyNotFound):
		return CodeKeyNotFound
	case errors.Is(err, ErrDailyCodeNotSet):
		return CodeDailyCodeNotSet
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	default:
		return CodeInternalServer
	}
}

// KindOf classifies err into the taxonomy. Unknown errors are internal.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// IsRetryable reports whether the whole unit of work may be retried
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	AccountID uint64
	Required  int64
	Balance   int64
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for account %d: required %d, available %d",
		e.AccountID, e.Required, e.Balance)
}

// Is checks if the target error is an ErrInsufficientBalance or its kind
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance || target == ErrConflict
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_balance",
		"account_id": e.AccountID,
		"required":   e.Required,
		"balance":    e.Balance,
		"error_code": CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(accountID uint64, required, balance int64) error {
	return &InsufficientBalanceError{
		AccountID: accountID,
		Required:  required,
		Balance:   balance,
	}
}

// InventoryExhaustedError reports how many items were available when the claim ran
type InventoryExhaustedError struct {
	Requested int
	Available int
}

// Error implements the error interface
func (e *InventoryExhaustedError) Error() string {
	return fmt.Sprintf("inventory exhausted: requested %d, available %d", e.Requested, e.Available)
}

// Is checks if the target error is an ErrInventoryExhausted or its kind
func (e *InventoryExhaustedError) Is(target error) bool {
	return target == ErrInventoryExhausted || target == ErrConflict
}

// LogFields returns a map of fields for structured logging
func (e *InventoryExhaustedError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "inventory_exhausted",
		"requested":  e.Requested,
		"available":  e.Available,
		"error_code": CodeInventoryExhausted,
	}
}

// NewInventoryExhaustedError creates a new inventory exhausted error
func NewInventoryExhaustedError(requested, available int) error {
	return &InventoryExhaustedError{Requested: requested, Available: available}
}

// KeyRedemptionError attaches the key value to a redemption failure
type KeyRedemptionError struct {
	KeyValue string
	Err      error
}

// Error implements the error interface
func (e *KeyRedemptionError) Error() string {
	return fmt.Sprintf("key %s: %v", e.KeyValue, e.Err)
}

// Unwrap returns the underlying error
func (e *KeyRedemptionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *KeyRedemptionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "key_redemption",
		"key_value":  e.KeyValue,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewKeyRedemptionError wraps err with the key value
func NewKeyRedemptionError(keyValue string, err error) error {
	return &KeyRedemptionError{KeyValue: keyValue, Err: err}
}

// LogFields extracts structured fields from typed errors, falling back to the message and code
func LogFields(err error) map[string]any {
	var fielder interface{ LogFields() map[string]any }
	if errors.As(err, &fielder) {
		return fielder.LogFields()
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}
}
