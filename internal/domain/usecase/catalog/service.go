package catalog

import (
	"context"

	"gift-economy/internal/domain/entity"
	coreport "gift-economy/internal/domain/port/core"
	"gift-economy/internal/domain/port/persistence"
)

// Service exposes the read side of the gift catalog and the append used by
// the gated admin operation. Entries are immutable once appended.
type Service struct {
	gifts  persistence.GiftRepository
	logger coreport.Logger
}

// NewService creates a new catalog service
func NewService(gifts persistence.GiftRepository, logger coreport.Logger) *Service {
	return &Service{
		gifts:  gifts,
		logger: logger,
	}
}

// List returns the catalog. When userID is non-zero each entry carries the
// user's ownership state, mirroring the left-join listing of the shop page.
func (s *Service) List(ctx context.Context, userID uint64) ([]*entity.CatalogEntry, error) {
	if userID != 0 {
		return s.gifts.ListForUser(ctx, userID)
	}

	gifts, err := s.gifts.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.CatalogEntry, 0, len(gifts))
	for _, g := range gifts {
		entries = append(entries, &entity.CatalogEntry{Gift: *g})
	}
	return entries, nil
}

// Append validates and persists a new catalog entry, returning its ID.
// Privilege is the caller's concern; the admin gate fronts this in the
// request path.
func (s *Service) Append(ctx context.Context, name, description string, price int64, icon, category string) (uint64, error) {
	gift, err := entity.NewGift(name, description, price, icon, category)
	if err != nil {
		return 0, err
	}

	if err := s.gifts.Create(ctx, gift); err != nil {
		s.logger.Error("Failed to append catalog entry", map[string]any{
			"name":  gift.Name,
			"error": err.Error(),
		})
		return 0, err
	}

	s.logger.Info("Catalog entry appended", map[string]any{
		"gift_id":  gift.ID,
		"name":     gift.Name,
		"price":    gift.Price,
		"category": gift.Category,
	})

	return gift.ID, nil
}
