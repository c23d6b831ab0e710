package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gift-economy/internal/domain/entity"
	errs "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	"gift-economy/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClaimRepository implements the daily reward claim persistence port using GORM
type ClaimRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewClaimRepository creates a new ClaimRepository instance
func NewClaimRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *ClaimRepository {
	return &ClaimRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Get retrieves the claim record for the user. Returns (nil, nil) when the
// user has never claimed.
func (r *ClaimRepository) Get(ctx context.Context, userID uint64) (*entity.ClaimRecord, error) {
	var claimModel model.ClaimRecord
	result := r.db.WithContext(ctx).First(&claimModel, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Database error when getting claim record", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return &entity.ClaimRecord{
		UserID:        claimModel.UserID,
		LastClaimDate: claimModel.LastClaimDate,
	}, nil
}

// Upsert creates the record on first claim and moves last_claim_date forward
// on later ones. The user_id primary key is the conflict target, so a
// concurrent double insert collapses into one row.
func (r *ClaimRepository) Upsert(ctx context.Context, userID uint64, day time.Time) error {
	claimModel := model.ClaimRecord{
		UserID:        userID,
		LastClaimDate: day,
		UpdatedAt:     r.timeProvider.Now(),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_claim_date", "updated_at"}),
	}).Create(&claimModel)

	if result.Error != nil {
		r.logger.Error("Database error when upserting claim record", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return nil
}
