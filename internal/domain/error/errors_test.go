package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	// Test to ensure all base error types are defined properly
	if ErrInsufficientFunds.Error() != "insufficient funds" {
		t.Errorf("ErrInsufficientFunds has unexpected message: %s", ErrInsufficientFunds.Error())
	}
	if ErrDuplicateUsername.Error() != "username already exists" {
		t.Errorf("ErrDuplicateUsername has unexpected message: %s", ErrDuplicateUsername.Error())
	}
	if ErrAlreadyClaimed.Error() != "reward already claimed today" {
		t.Errorf("ErrAlreadyClaimed has unexpected message: %s", ErrAlreadyClaimed.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"Validation", ErrValidation, 4001},
		{"InsufficientFunds", ErrInsufficientFunds, 4002},
		{"InvalidAmount", ErrInvalidAmount, 4003},
		{"InvalidCredentials", ErrInvalidCredentials, 4010},
		{"Banned", ErrBanned, 4030},
		{"Unauthorized", ErrUnauthorized, 4031},
		{"AccountNotFound", ErrAccountNotFound, 4040},
		{"GiftNotFound", ErrGiftNotFound, 4041},
		{"DuplicateUsername", ErrDuplicateUsername, 4090},
		{"AlreadyOwned", ErrAlreadyOwned, 4091},
		{"AlreadyClaimed", ErrAlreadyClaimed, 4092},
		{"ConstraintViolation", ErrConstraintViolation, 4005},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrGiftNotFound), 4041},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientFundsError(t *testing.T) {
	fundsErr := NewInsufficientFundsError(123, 100, 50)

	expectedErrMsg := "insufficient funds for user 123: required 100, available 50"
	if fundsErr.Error() != expectedErrMsg {
		t.Errorf("InsufficientFundsError.Error() = %s, want %s", fundsErr.Error(), expectedErrMsg)
	}

	// The detailed error must still answer to the sentinel
	if !errors.Is(fundsErr, ErrInsufficientFunds) {
		t.Errorf("errors.Is(fundsErr, ErrInsufficientFunds) = false, want true")
	}
	if ErrorCode(fundsErr) != CodeInsufficientFunds {
		t.Errorf("ErrorCode(fundsErr) = %d, want %d", ErrorCode(fundsErr), CodeInsufficientFunds)
	}
}

func TestPurchaseError(t *testing.T) {
	baseErr := ErrAlreadyOwned
	purchaseErr := &PurchaseError{
		UserID: 456,
		GiftID: 7,
		Reason: "ownership row exists",
		Err:    baseErr,
	}

	expectedErrMsg := "purchase failed for user 456, gift 7: ownership row exists - gift already purchased"
	if purchaseErr.Error() != expectedErrMsg {
		t.Errorf("PurchaseError.Error() = %s, want %s", purchaseErr.Error(), expectedErrMsg)
	}

	// Test Unwrap via errors.Is
	if !errors.Is(purchaseErr, baseErr) {
		t.Errorf("errors.Is(purchaseErr, baseErr) = false, want true")
	}

	fields := purchaseErr.LogFields()
	if fields["error_code"] != CodeAlreadyOwned {
		t.Errorf("LogFields error_code = %v, want %d", fields["error_code"], CodeAlreadyOwned)
	}
}

func TestErrorCheckHelpers(t *testing.T) {
	if !IsNotFoundError(fmt.Errorf("lookup: %w", ErrGiftNotFound)) {
		t.Error("IsNotFoundError should match wrapped ErrGiftNotFound")
	}
	if !IsAlreadyClaimedError(ErrAlreadyClaimed) {
		t.Error("IsAlreadyClaimedError should match ErrAlreadyClaimed")
	}
	if IsUnauthorizedError(ErrBanned) {
		t.Error("IsUnauthorizedError should not match ErrBanned")
	}
	if !IsValidationError(ErrInvalidAmount) {
		t.Error("IsValidationError should match ErrInvalidAmount")
	}
}
