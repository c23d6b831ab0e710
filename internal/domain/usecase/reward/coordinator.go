package reward

import (
	"context"
	"time"

	errs "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	"gift-economy/internal/domain/port/persistence"
	"gift-economy/internal/domain/usecase/ledger"
)

// Status reports whether a claim is currently possible
type Status struct {
	CanClaim     bool
	RewardAmount int64
}

// ClaimResult is the outcome of a successful claim
type ClaimResult struct {
	NewBalance   int64
	RewardAmount int64
}

// Coordinator performs the daily claim as one atomic unit. The claim-date
// read and the credit are linearized per user by the same account row lock
// the purchase path uses, so N concurrent claims on one day resolve to one
// success and N-1 AlreadyClaimed failures.
type Coordinator struct {
	uow          persistence.UnitOfWork
	ledger       *ledger.Ledger
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	rewardAmount int64
}

// NewCoordinator creates a new reward coordinator
func NewCoordinator(
	uow persistence.UnitOfWork,
	ldg *ledger.Ledger,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	rewardAmount int64,
) *Coordinator {
	return &Coordinator{
		uow:          uow,
		ledger:       ldg,
		timeProvider: timeProvider,
		logger:       logger,
		rewardAmount: rewardAmount,
	}
}

// RewardAmount returns the configured daily reward
func (c *Coordinator) RewardAmount() int64 {
	return c.rewardAmount
}

// Status reports whether the user can claim today. Read-only; never blocks a
// concurrent claim.
func (c *Coordinator) Status(ctx context.Context, userID uint64) (*Status, error) {
	if userID == 0 {
		return nil, errs.ErrValidation
	}

	record, err := c.uow.Claims(ctx).Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	canClaim := record == nil || !record.ClaimedOn(c.timeProvider.Today())
	return &Status{CanClaim: canClaim, RewardAmount: c.rewardAmount}, nil
}

// Claim credits the daily reward once per calendar day. The account row lock
// taken first serializes against every other mutation of the same account,
// so the re-read of the claim record inside the unit is authoritative.
func (c *Coordinator) Claim(ctx context.Context, userID uint64) (result *ClaimResult, err error) {
	if userID == 0 {
		return nil, errs.ErrValidation
	}

	today := c.timeProvider.Today()

	txCtx, err := c.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = c.uow.Rollback(txCtx)
		}
	}()

	if _, err = c.uow.Accounts(txCtx).GetForUpdate(txCtx, userID); err != nil {
		return nil, err
	}

	record, err := c.uow.Claims(txCtx).Get(txCtx, userID)
	if err != nil {
		return nil, err
	}
	if record != nil && record.ClaimedOn(today) {
		err = errs.ErrAlreadyClaimed
		return nil, err
	}

	account, err := c.ledger.Adjust(txCtx, userID, c.rewardAmount, ledger.ReasonRewardClaim)
	if err != nil {
		return nil, err
	}

	if err = c.uow.Claims(txCtx).Upsert(txCtx, userID, today); err != nil {
		return nil, err
	}

	if err = c.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	c.logger.Info("Daily reward claimed", map[string]any{
		"user_id":     userID,
		"reward":      c.rewardAmount,
		"claim_date":  today.Format(time.DateOnly),
		"new_balance": account.Balance(),
	})

	return &ClaimResult{NewBalance: account.Balance(), RewardAmount: c.rewardAmount}, nil
}
