package persistence

import (
	"context"
)

// UnitOfWork coordinates the repositories taking part in one atomic economic
// unit. Begin opens the underlying transaction and returns a context carrying
// it; repositories obtained with that context are bound to the transaction,
// so every multi-step operation commits or rolls back as a whole.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Accounts returns an account repository bound to the current transaction
	Accounts(ctx context.Context) AccountRepository

	// Gifts returns a gift repository bound to the current transaction
	Gifts(ctx context.Context) GiftRepository

	// Ownerships returns an ownership repository bound to the current transaction
	Ownerships(ctx context.Context) OwnershipRepository

	// Claims returns a claim repository bound to the current transaction
	Claims(ctx context.Context) ClaimRepository
}
