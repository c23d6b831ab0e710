package entity

import (
	"strings"
	"time"

	errs "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
)

// Account represents a user account holding a currency balance.
// The balance is private: every mutation goes through the methods below so the
// non-negative invariant cannot be bypassed by a stray field write.
type Account struct {
	ID           uint64    // Unique identifier for the account
	Username     string    // Unique login name
	PasswordHash string    // Credential digest produced by the hasher port
	balance      int64     // Whole currency units, never negative (private)
	IsAdmin      bool      // Administrative privilege flag
	IsBanned     bool      // Ban flag, checked at login after credential verification
	CreatedAt    time.Time // When the account was created
	UpdatedAt    time.Time // When the account was last updated
}

// NewAccount creates a new account with the given username, credential digest
// and starting balance
func NewAccount(username, passwordHash string, startingBalance int64, timeProvider coreport.TimeProvider) (*Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errs.ErrValidation
	}
	if passwordHash == "" {
		return nil, errs.ErrValidation
	}
	if startingBalance < 0 {
		return nil, errs.ErrInvalidAmount
	}

	now := timeProvider.Now()
	return &Account{
		Username:     username,
		PasswordHash: passwordHash,
		balance:      startingBalance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Balance returns the current balance
func (a *Account) Balance() int64 {
	return a.balance
}

// SetBalance updates the balance directly (for internal use, like repositories)
func (a *Account) SetBalance(balance int64, timeProvider coreport.TimeProvider) {
	a.balance = balance
	a.UpdatedAt = timeProvider.Now()
}

// CanAfford checks if the account has enough balance for a debit of price
func (a *Account) CanAfford(price int64) bool {
	return a.balance >= price
}

// Credit adds the amount to the balance
func (a *Account) Credit(amount int64, timeProvider coreport.TimeProvider) {
	a.balance += amount
	a.UpdatedAt = timeProvider.Now()
}

// Debit subtracts the amount from the balance if sufficient funds exist.
// Returns a detailed insufficient-funds error otherwise.
func (a *Account) Debit(amount int64, timeProvider coreport.TimeProvider) error {
	if a.balance < amount {
		return errs.NewInsufficientFundsError(a.ID, amount, a.balance)
	}

	a.balance -= amount
	a.UpdatedAt = timeProvider.Now()
	return nil
}
