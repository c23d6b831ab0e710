package ledger

import (
	"context"

	"gift-economy/internal/domain/entity"
	errs "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	"gift-economy/internal/domain/port/persistence"
)

// Reason attributes a balance change to exactly one economic cause.
// Every mutation that goes through the ledger carries one; there are no
// silent balance changes.
type Reason string

const (
	ReasonRegistrationGrant Reason = "registration_grant"
	ReasonAdminAdjustment   Reason = "admin_adjustment"
	ReasonRewardClaim       Reason = "reward_claim"
	ReasonPurchaseDebit     Reason = "purchase_debit"
)

// IsValidReason reports whether the reason is one of the known causes
func IsValidReason(r Reason) bool {
	switch r {
	case ReasonRegistrationGrant, ReasonAdminAdjustment, ReasonRewardClaim, ReasonPurchaseDebit:
		return true
	}
	return false
}

// Ledger is the sole authorized path for balance mutation. It resolves the
// account repository through the unit of work, so an adjustment joins the
// caller's transaction when the context carries one and runs in its own
// atomic unit otherwise.
type Ledger struct {
	uow    persistence.UnitOfWork
	logger coreport.Logger
}

// NewLedger creates a new ledger over the given unit of work
func NewLedger(uow persistence.UnitOfWork, logger coreport.Logger) *Ledger {
	return &Ledger{
		uow:    uow,
		logger: logger,
	}
}

// Adjust applies a signed delta to the account balance. The store-level
// compare-and-apply rejects any result below zero with ErrInsufficientFunds;
// that check binds debits from every source, including administrative ones.
func (l *Ledger) Adjust(ctx context.Context, userID uint64, delta int64, reason Reason) (*entity.Account, error) {
	if userID == 0 {
		return nil, errs.ErrValidation
	}
	if !IsValidReason(reason) {
		return nil, errs.ErrValidation
	}

	account, err := l.uow.Accounts(ctx).AdjustBalance(ctx, userID, delta)
	if err != nil {
		l.logger.Warn("Balance adjustment rejected", map[string]any{
			"user_id": userID,
			"delta":   delta,
			"reason":  string(reason),
			"error":   err.Error(),
		})
		return nil, err
	}

	l.logger.Info("Balance adjusted", map[string]any{
		"user_id":     userID,
		"delta":       delta,
		"reason":      string(reason),
		"new_balance": account.Balance(),
	})

	return account, nil
}
