package persistence

import (
	"context"
	"time"

	"gift-economy/internal/domain/entity"
)

// ClaimRepository defines methods for the per-user daily reward claim record
type ClaimRepository interface {
	// Get retrieves the claim record for the user. Returns (nil, nil) when the
	// user has never claimed.
	Get(ctx context.Context, userID uint64) (*entity.ClaimRecord, error)

	// Upsert creates the record on first claim and updates last_claim_date on
	// later ones. The user_id primary key makes a concurrent double insert
	// collapse into one row at the store level.
	Upsert(ctx context.Context, userID uint64, day time.Time) error
}
