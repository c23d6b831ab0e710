package admin

import (
	"context"

	"gift-economy/internal/domain/entity"
	errs "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	"gift-economy/internal/domain/port/persistence"
)

// Capability proves a successful privilege check for one call. It is never
// cached: a revoked admin loses privilege on their very next call because
// Authorize re-reads the flag from the store every time.
type Capability struct {
	Admin *entity.Account
}

// Gate revalidates administrative privilege per call
type Gate struct {
	accounts persistence.AccountRepository
	logger   coreport.Logger
}

// NewGate creates a new admin gate
func NewGate(accounts persistence.AccountRepository, logger coreport.Logger) *Gate {
	return &Gate{
		accounts: accounts,
		logger:   logger,
	}
}

// Authorize re-reads the caller's account and returns a capability when the
// admin flag is set. An unknown username and a non-admin one both come back
// as ErrUnauthorized; the gate does not reveal which.
func (g *Gate) Authorize(ctx context.Context, adminUsername string) (*Capability, error) {
	if adminUsername == "" {
		return nil, errs.ErrValidation
	}

	account, err := g.accounts.GetByUsername(ctx, adminUsername)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrUnauthorized
		}
		return nil, err
	}

	if !account.IsAdmin {
		g.logger.Warn("Privilege check failed", map[string]any{
			"username": adminUsername,
		})
		return nil, errs.ErrUnauthorized
	}

	return &Capability{Admin: account}, nil
}
