package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestSpecificErrorsWrapTheirKind(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind Kind
	}{
		{"AccountInactive", ErrAccountInactive, KindForbidden},
		{"AccountExpired", ErrAccountExpired, KindForbidden},
		{"AdminRequired", ErrAdminRequired, KindForbidden},
		{"KeyNotFound", ErrKeyNotFound, KindNotFound},
		{"AccountNotFound", ErrAccountNotFound, KindNotFound},
		{"InsufficientBalance", ErrInsufficientBalance, KindConflict},
		{"InventoryExhausted", ErrInventoryExhausted, KindConflict},
		{"KeyAlreadyUsed", ErrKeyAlreadyUsed, KindConflict},
		{"KeyExpired", ErrKeyExpired, KindConflict},
		{"ConcurrentModification", ErrConcurrentModification, KindConflict},
		{"InvalidAmount", ErrInvalidAmount, KindInvalidInput},
		{"InvalidKeyFormat", ErrInvalidKeyFormat, KindInvalidInput},
		{"EmptyUpload", ErrEmptyUpload, KindInvalidInput},
		{"Unauthorized", ErrUnauthorized, KindUnauthorized},
		{"DatabaseConnection", ErrDatabaseConnection, KindInternal},
		{"Unknown", errors.New("boom"), KindInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.kind {
				t.Errorf("KindOf(%v) = %s, want %s", tc.err, got, tc.kind)
			}
			wrapped := fmt.Errorf("outer: %w", tc.err)
			if got := KindOf(wrapped); got != tc.kind {
				t.Errorf("KindOf(wrapped %v) = %s, want %s", tc.err, got, tc.kind)
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientBalance", ErrInsufficientBalance, CodeInsufficientBalance},
		{"InvalidAmount", ErrInvalidAmount, CodeInvalidAmount},
		{"KeyNotFound", ErrKeyNotFound, CodeKeyNotFound},
		{"KeyAlreadyUsed", ErrKeyAlreadyUsed, CodeKeyAlreadyUsed},
		{"KeyExpired", ErrKeyExpired, CodeKeyExpired},
		{"InventoryExhausted", ErrInventoryExhausted, CodeInventoryExhausted},
		{"AccountInactive", ErrAccountInactive, CodeAccountInactive},
		{"GenericNotFound", ErrNotFound, CodeNotFound},
		{"UnknownError", errors.New("unknown error"), CodeInternalServer},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidKeyFormat), CodeInvalidKeyFormat},
		{"Nil", nil, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if code := ErrorCode(tc.err); code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(fmt.Errorf("claim: %w", ErrConcurrentModification)) {
		t.Error("concurrent modification should be retryable")
	}
	for _, err := range []error{ErrKeyAlreadyUsed, ErrInsufficientBalance, ErrInventoryExhausted, ErrConflict} {
		if IsRetryable(err) {
			t.Errorf("%v should not be retryable", err)
		}
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError(7, 100, 20)

	if !errors.Is(err, ErrInsufficientBalance) {
		t.Error("expected errors.Is to match ErrInsufficientBalance")
	}
	if !errors.Is(err, ErrConflict) {
		t.Error("expected errors.Is to match ErrConflict")
	}
	if ErrorCode(err) != CodeInsufficientBalance {
		t.Errorf("unexpected code %d", ErrorCode(err))
	}

	fields := LogFields(err)
	if fields["account_id"] != uint64(7) || fields["required"] != int64(100) || fields["balance"] != int64(20) {
		t.Errorf("unexpected log fields: %v", fields)
	}
}

func TestInventoryExhaustedError(t *testing.T) {
	err := fmt.Errorf("exchange: %w", NewInventoryExhaustedError(3, 1))

	if !errors.Is(err, ErrInventoryExhausted) {
		t.Error("expected errors.Is to match ErrInventoryExhausted")
	}
	var typed *InventoryExhaustedError
	if !errors.As(err, &typed) || typed.Available != 1 {
		t.Errorf("expected typed error with available=1, got %v", typed)
	}
}

func TestKeyRedemptionError(t *testing.T) {
	err := NewKeyRedemptionError("VIP-AAAAAA-111111", ErrKeyExpired)

	if !errors.Is(err, ErrKeyExpired) {
		t.Error("expected errors.Is to match ErrKeyExpired")
	}
	if errors.Is(err, ErrKeyAlreadyUsed) {
		t.Error("did not expect ErrKeyAlreadyUsed")
	}
	fields := LogFields(err)
	if fields["key_value"] != "VIP-AAAAAA-111111" || fields["error_code"] != CodeKeyExpired {
		t.Errorf("unexpected log fields: %v", fields)
	}
}

func TestLogFieldsFallback(t *testing.T) {
	fields := LogFields(ErrKeyNotFound)
	if fields["error_code"] != CodeKeyNotFound {
		t.Errorf("unexpected code field: %v", fields["error_code"])
	}
	if fields["error"] != ErrKeyNotFound.Error() {
		t.Errorf("unexpected error field: %v", fields["error"])
	}
}
