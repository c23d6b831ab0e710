package migration

import (
	"context"

	"gift-economy/internal/domain/usecase/catalog"
)

// defaultGift describes one bootstrap catalog entry
type defaultGift struct {
	name        string
	description string
	price       int64
	icon        string
	category    string
}

// Bootstrap catalog for a fresh database. Appended only when the catalog is
// empty, so redeploys never duplicate entries.
var defaultGifts = []defaultGift{
	{name: "Rose", description: "A single rose", price: 150, icon: "Flower", category: "romance"},
	{name: "Teddy Bear", description: "A soft plush bear", price: 300, icon: "Heart", category: "romance"},
	{name: "Trophy", description: "A golden trophy", price: 500, icon: "Trophy", category: "achievement"},
	{name: "Mixtape", description: "A curated playlist", price: 200, icon: "Music", category: "fun"},
	{name: "Coin Pouch", description: "A pouch of shiny coins", price: 400, icon: "Coins", category: "fun"},
	{name: "Sticker", description: "A simple sticker", price: 50, icon: "", category: ""},
}

// CreateDefaultGifts seeds the catalog when it is empty
func CreateDefaultGifts(ctx context.Context, catalogService *catalog.Service) error {
	entries, err := catalogService.List(ctx, 0)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return nil
	}

	for _, g := range defaultGifts {
		if _, err := catalogService.Append(ctx, g.name, g.description, g.price, g.icon, g.category); err != nil {
			return err
		}
	}

	return nil
}
