package persistence

import (
	"context"

	"gift-economy/internal/domain/entity"
)

// GiftRepository defines methods to interact with the gift catalog
type GiftRepository interface {
	// GetByID retrieves a catalog entry by ID
	//
	// Possible errors:
	// - ErrGiftNotFound: If no gift with the ID exists
	// - ErrDatabaseConnection: If the database is unreachable
	GetByID(ctx context.Context, id uint64) (*entity.Gift, error)

	// Create appends a new entry to the catalog. Entries are immutable after
	// this call.
	Create(ctx context.Context, gift *entity.Gift) error

	// List returns the whole catalog ordered by ID
	List(ctx context.Context) ([]*entity.Gift, error)

	// ListForUser returns the catalog decorated with the user's ownership
	// state, ordered by ID
	ListForUser(ctx context.Context, userID uint64) ([]*entity.CatalogEntry, error)
}

// OwnershipRepository defines methods for the per-user purchase records
type OwnershipRepository interface {
	// Exists reports whether the user already owns the gift
	Exists(ctx context.Context, userID, giftID uint64) (bool, error)

	// Create inserts the ownership row. The (user_id, gift_id) unique index is
	// enforced by the store; a lost purchase race surfaces here as
	// ErrAlreadyOwned instead of a second row.
	//
	// Possible errors:
	// - ErrAlreadyOwned: If the row already exists
	// - ErrDatabaseConnection: If the database is unreachable
	Create(ctx context.Context, ownership *entity.Ownership) error
}
