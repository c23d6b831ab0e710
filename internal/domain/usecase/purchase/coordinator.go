package purchase

import (
	"context"

	errs "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	"gift-economy/internal/domain/port/persistence"
	"gift-economy/internal/domain/usecase/ledger"

	"gift-economy/internal/domain/entity"
)

// Result is the outcome of a successful purchase
type Result struct {
	NewBalance int64
	Gift       *entity.Gift
}

/// Coordinator performs a gift purchase as one atomic unit: account row lock,
// ownership and funds checks, debit, ownership insert, commit. Two concurrent
// purchases against the same account serialize on the row lock, so neither
// can act on a stale balance or insert a second ownership row.
type Coordinator struct {
	uow          persistence.UnitOfWork
	ledger       *ledger.Ledger
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewCoordinator creates a new purchase coordinator
func NewCoordinator(
	uow persistence.UnitOfWork,
	ldg *ledger.Ledger,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Coordinator {
	return &Coordinator{
		uow:          uow,
		ledger:       ldg,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Purchase executes the one-time purchase of giftID for userID and returns
// the debited balance. Any failure aborts the whole unit with no partial
// effect persisted.
func (c *Coordinator) Purchase(ctx context.Context, userID, giftID uint64) (result *Result, err error) {
	if userID == 0 || giftID == 0 {
		return nil, errs.ErrValidation
	}

	txCtx, err := c.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = c.uow.Rollback(txCtx)
		}
	}()

	// Lock the account row for the duration of the check-and-commit
	account, err := c.uow.Accounts(txCtx).GetForUpdate(txCtx, userID)
	if err != nil {
		return nil, err
	}

	gift, err := c.uow.Gifts(txCtx).GetByID(txCtx, giftID)
	if err != nil {
		return nil, err
	}

	owned, err := c.uow.Ownerships(txCtx).Exists(txCtx, userID, giftID)
	if err != nil {
		return nil, err
	}
	if owned {
		err = errs.NewPurchaseError(userID, giftID, "ownership row exists", errs.ErrAlreadyOwned)
		return nil, err
	}

	if !account.CanAfford(gift.Price) {
		err = errs.NewInsufficientFundsError(userID, gift.Price, account.Balance())
		return nil, err
	}

	account, err = c.ledger.Adjust(txCtx, userID, -gift.Price, ledger.ReasonPurchaseDebit)
	if err != nil {
		return nil, err
	}

	ownership := &entity.Ownership{
		UserID:      userID,
		GiftID:      giftID,
		PurchasedAt: c.timeProvider.Now(),
	}
	// The unique index on (user_id, gift_id) backs the Exists check above;
	// a lost race aborts the unit here instead of committing twice
	if err = c.uow.Ownerships(txCtx).Create(txCtx, ownership); err != nil {
		return nil, err
	}

	if err = c.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	c.logger.Info("Gift purchased", map[string]any{
		"user_id":     userID,
		"gift_id":     giftID,
		"price":       gift.Price,
		"new_balance": account.Balance(),
	})

	return &Result{NewBalance: account.Balance(), Gift: gift}, nil
}
