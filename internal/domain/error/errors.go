package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4001
	CodeInsufficientFunds   = 4002
	CodeInvalidAmount       = 4003
	CodeConstraintViolation = 4005
	CodeInvalidCredentials  = 4010
	CodeBanned              = 4030
	CodeUnauthorized        = 4031
	CodeAccountNotFound     = 4040
	CodeGiftNotFound        = 4041
	CodeDuplicateUsername   = 4090
	CodeAlreadyOwned        = 4091
	CodeAlreadyClaimed      = 4092

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrValidation is returned when request input is missing or malformed
	ErrValidation = errors.New("invalid request input")

	// ErrInsufficientFunds is returned when a debit would drive the balance negative
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned when a price or delta is outside the allowed range
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCredentials is returned when the username is unknown or the secret does not verify
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrBanned is returned when a banned account passes credential verification
	ErrBanned = errors.New("account is banned")

	// ErrUnauthorized is returned when the caller lacks administrative privilege
	ErrUnauthorized = errors.New("admin access required")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrGiftNotFound is returned when the requested gift doesn't exist
	ErrGiftNotFound = errors.New("gift not found")

	// ErrDuplicateUsername is returned when registering a username that already exists
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrAlreadyOwned is returned when the user already purchased the gift
	ErrAlreadyOwned = errors.New("gift already purchased")

	// ErrAlreadyClaimed is returned when the daily reward was already claimed today
	ErrAlreadyClaimed = errors.New("reward already claimed today")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrBanned):
		return CodeBanned
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrGiftNotFound):
		return CodeGiftNotFound
	case errors.Is(err, ErrDuplicateUsername):
		return CodeDuplicateUsername
	case errors.Is(err, ErrAlreadyOwned):
		return CodeAlreadyOwned
	case errors.Is(err, ErrAlreadyClaimed):
		return CodeAlreadyClaimed
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information for a rejected debit
type InsufficientFundsError struct {
	UserID      uint64
	Required    int64
	CurrBalance int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %d: required %d, available %d",
		e.UserID, e.Required, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_funds",
		"user_id":         e.UserID,
		"required":        e.Required,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(userID uint64, required, currentBalance int64) error {
	return &InsufficientFundsError{
		UserID:      userID,
		Required:    required,
		CurrBalance: currentBalance,
	}
}

// PurchaseError represents an error raised while coordinating a gift purchase
type PurchaseError struct {
	UserID uint64
	GiftID uint64
	Reason string
	Err    error
}

// Error implements the error interface for PurchaseError
func (e *PurchaseError) Error() string {
	return fmt.Sprintf("purchase failed for user %d, gift %d: %s - %v",
		e.UserID, e.GiftID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *PurchaseError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *PurchaseError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "purchase_error",
		"user_id":    e.UserID,
		"gift_id":    e.GiftID,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewPurchaseError creates a detailed purchase error
func NewPurchaseError(userID, giftID uint64, reason string, err error) error {
	return &PurchaseError{
		UserID: userID,
		GiftID: giftID,
		Reason: reason,
		Err:    err,
	}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsAlreadyOwnedError checks if the error is a duplicate ownership error
func IsAlreadyOwnedError(err error) bool {
	return errors.Is(err, ErrAlreadyOwned)
}

// IsAlreadyClaimedError checks if the error is a same-day claim error
func IsAlreadyClaimedError(err error) bool {
	return errors.Is(err, ErrAlreadyClaimed)
}

// IsUnauthorizedError checks if the error is a missing-privilege error
func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrGiftNotFound)
}

// IsValidationError checks if the error is a request-input error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidAmount)
}
