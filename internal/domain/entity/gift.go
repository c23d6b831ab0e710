package entity

import (
	"strings"
	"time"

	errs "gift-economy/internal/domain/error"
)

// Default presentation values applied when a catalog entry omits them
const (
	DefaultGiftIcon     = "Gift"
	DefaultGiftCategory = "general"
)

// Gift is a purchasable catalog item. Immutable once created.
type Gift struct {
	ID          uint64
	Name        string
	Description string
	Price       int64 // Whole currency units, never negative
	Icon        string
	Category    string
	CreatedAt   time.Time
}

// NewGift validates and builds a catalog entry, filling presentation defaults
func NewGift(name, description string, price int64, icon, category string) (*Gift, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.ErrValidation
	}
	if price < 0 {
		return nil, errs.ErrInvalidAmount
	}
	if icon == "" {
		icon = DefaultGiftIcon
	}
	if category == "" {
		category = DefaultGiftCategory
	}

	return &Gift{
		Name:        name,
		Description: description,
		Price:       price,
		Icon:        icon,
		Category:    category,
	}, nil
}

// CatalogEntry is a gift decorated with the caller's ownership state,
// used by the listing operation when a user id is supplied
type CatalogEntry struct {
	Gift
	Purchased bool
}
