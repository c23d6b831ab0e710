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
)

// GiftRepository implements the gift catalog persistence port using GORM
type GiftRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewGiftRepository creates a new GiftRepository instance
func NewGiftRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *GiftRepository {
	return &GiftRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func giftModelToEntity(giftModel *model.Gift) *entity.Gift {
	return &entity.Gift{
		ID:          giftModel.ID,
		Name:        giftModel.Name,
		Description: giftModel.Description,
		Price:       giftModel.Price,
		Icon:        giftModel.Icon,
		Category:    giftModel.Category,
		CreatedAt:   giftModel.CreatedAt,
	}
}

// GetByID retrieves a catalog entry by ID
func (r *GiftRepository) GetByID(ctx context.Context, id uint64) (*entity.Gift, error) {
	var giftModel model.Gift
	result := r.db.WithContext(ctx).First(&giftModel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrGiftNotFound
		}
		r.logger.Error("Database error when getting gift", map[string]any{
			"gift_id": id,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return giftModelToEntity(&giftModel), nil
}

// Create appends a new entry to the catalog
func (r *GiftRepository) Create(ctx context.Context, gift *entity.Gift) error {
	giftModel := model.Gift{
		Name:        gift.Name,
		Description: gift.Description,
		Price:       gift.Price,
		Icon:        gift.Icon,
		Category:    gift.Category,
		CreatedAt:   r.timeProvider.Now(),
	}

	result := r.db.WithContext(ctx).Create(&giftModel)
	if result.Error != nil {
		r.logger.Error("Database error when creating gift", map[string]any{
			"name":  gift.Name,
			"error": result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	gift.ID = giftModel.ID
	gift.CreatedAt = giftModel.CreatedAt
	return nil
}

// List returns the whole catalog ordered by ID
func (r *GiftRepository) List(ctx context.Context) ([]*entity.Gift, error) {
	var giftModels []model.Gift
	result := r.db.WithContext(ctx).Order("id").Find(&giftModels)
	if result.Error != nil {
		r.logger.Error("Database error when listing gifts", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	gifts := make([]*entity.Gift, 0, len(giftModels))
	for i := range giftModels {
		gifts = append(gifts, giftModelToEntity(&giftModels[i]))
	}
	return gifts, nil
}

// catalogRow is the scan target for the ownership-decorated listing
type catalogRow struct {
	ID          uint64
	Name        string
	Description string
	Price       int64
	Icon        string
	Category    string
	CreatedAt   time.Time
	Purchased   bool
}

// ListForUser returns the catalog left-joined against the user's purchases,
// ordered by ID
func (r *GiftRepository) ListForUser(ctx context.Context, userID uint64) ([]*entity.CatalogEntry, error) {
	var rows []catalogRow
	result := r.db.WithContext(ctx).
		Table("gifts").
		Select("gifts.*, user_gifts.id IS NOT NULL AS purchased").
		Joins("LEFT JOIN user_gifts ON user_gifts.gift_id = gifts.id AND user_gifts.user_id = ?", userID).
		Order("gifts.id").
		Scan(&rows)
	if result.Error != nil {
		r.logger.Error("Database error when listing gifts for user", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	entries := make([]*entity.CatalogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &entity.CatalogEntry{
			Gift: entity.Gift{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				Price:       row.Price,
				Icon:        row.Icon,
				Category:    row.Category,
				CreatedAt:   row.CreatedAt,
			},
			Purchased: row.Purchased,
		})
	}
	return entries, nil
}
