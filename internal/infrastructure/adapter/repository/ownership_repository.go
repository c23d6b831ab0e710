package repository

import (
	"context"
	"fmt"

	"gift-economy/internal/domain/entity"
	errs "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	"gift-economy/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// OwnershipRepository implements the purchase record persistence port using GORM
type OwnershipRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewOwnershipRepository creates a new OwnershipRepository instance
func NewOwnershipRepository(db *gorm.DB, logger coreport.Logger) *OwnershipRepository {
	return &OwnershipRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Exists reports whether the user already owns the gift
func (r *OwnershipRepository) Exists(ctx context.Context, userID, giftID uint64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Ownership{}).
		Where("user_id = ? AND gift_id = ?", userID, giftID).
		Count(&count)
	if result.Error != nil {
		r.logger.Error("Database error when checking ownership", map[string]any{
			"user_id": userID,
			"gift_id": giftID,
			"error":   result.Error.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return count > 0, nil
}

// Create inserts the ownership row. A lost purchase race hits the
// (user_id, gift_id) unique index and comes back as ErrAlreadyOwned.
func (r *OwnershipRepository) Create(ctx context.Context, ownership *entity.Ownership) error {
	ownershipModel := model.Ownership{
		UserID:      ownership.UserID,
		GiftID:      ownership.GiftID,
		PurchasedAt: ownership.PurchasedAt,
	}

	result := r.db.WithContext(ctx).Create(&ownershipModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate ownership insert", map[string]any{
				"user_id": ownership.UserID,
				"gift_id": ownership.GiftID,
			})
			return errs.ErrAlreadyOwned
		}
		r.logger.Error("Database error when creating ownership", map[string]any{
			"user_id": ownership.UserID,
			"gift_id": ownership.GiftID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	ownership.ID = ownershipModel.ID
	return nil
}
