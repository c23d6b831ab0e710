package persistence

import (
	"context"

	"gift-economy/internal/domain/entity"
)

// AccountRepository defines essential methods to interact with account data.
// All mutation methods are atomic at the single-row level.
type AccountRepository interface {
	// GetByID retrieves an account by ID
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account with the ID exists
	// - ErrDatabaseConnection: If the database is unreachable
	GetByID(ctx context.Context, id uint64) (*entity.Account, error)

	// GetByUsername retrieves an account by its unique username
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account with the username exists
	// - ErrDatabaseConnection: If the database is unreachable
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)

	// GetForUpdate retrieves an account by ID while holding an exclusive row
	// lock for the remainder of the enclosing unit of work. This is the
	// per-account serialization primitive: every multi-step economic unit
	// (purchase, claim, adjustment) locks the account row first, so
	// conflicting units against the same account cannot interleave.
	//
	// Only meaningful on a repository obtained from a begun UnitOfWork.
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account with the ID exists
	// - ErrDatabaseConnection: If the database is unreachable
	GetForUpdate(ctx context.Context, id uint64) (*entity.Account, error)

	// Create persists a new account. The username unique index is enforced by
	// the store, so a concurrent duplicate insert fails here rather than
	// silently succeeding twice.
	//
	// Possible errors:
	// - ErrDuplicateUsername: If the username is already taken
	// - ErrDatabaseConnection: If the database is unreachable
	Create(ctx context.Context, account *entity.Account) error

	// List returns all accounts ordered by ID (admin listing)
	List(ctx context.Context) ([]*entity.Account, error)

	// UpdateBalance persists the balance held by the entity. Callers are
	// expected to have loaded the entity under GetForUpdate within the same
	// unit of work; the entity's own Debit/Credit methods maintain the
	// non-negative invariant.
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account no longer exists
	// - ErrDatabaseConnection: If the database is unreachable
	UpdateBalance(ctx context.Context, account *entity.Account) error

	// AdjustBalance applies a signed delta to the balance as one atomic
	// compare-and-apply: the row is locked, the resulting balance is checked
	// against zero, and the update is committed or nothing is.
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account with the ID exists
	// - ErrInsufficientFunds: If balance + delta < 0
	// - ErrDatabaseConnection: If the database is unreachable
	AdjustBalance(ctx context.Context, id uint64, delta int64) (*entity.Account, error)

	// SetAdmin flips the administrative flag on the account with the username
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account with the username exists
	// - ErrDatabaseConnection: If the database is unreachable
	SetAdmin(ctx context.Context, username string, granted bool) (*entity.Account, error)

	// SetBanned flips the ban flag on the account with the username
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account with the username exists
	// - ErrDatabaseConnection: If the database is unreachable
	SetBanned(ctx context.Context, username string, banned bool) (*entity.Account, error)
}
