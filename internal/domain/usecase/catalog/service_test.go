package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-economy/internal/domain/entity"
	errs "gift-economy/internal/domain/error"
	"gift-economy/internal/domain/usecase/catalog"
	"gift-economy/internal/domain/usecase/fakes"
)

func newService(t *testing.T) (*catalog.Service, *fakes.Store) {
	t.Helper()
	clock := fakes.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := fakes.NewStore(clock)
	return catalog.NewService(store.GiftRepo(), fakes.NewNopLogger()), store
}

func TestAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the entry and returns its id", func(t *testing.T) {
		svc, store := newService(t)

		id, err := svc.Append(ctx, "Rose", "A single rose", 150, "Flower", "flowers")
		require.NoError(t, err)
		require.NotZero(t, id)

		gift, err := store.GetGiftByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Rose", gift.Name)
		assert.Equal(t, int64(150), gift.Price)
		assert.Equal(t, "Flower", gift.Icon)
		assert.Equal(t, "flowers", gift.Category)
	})

	t.Run("fills icon and category defaults", func(t *testing.T) {
		svc, store := newService(t)

		id, err := svc.Append(ctx, "Rose", "", 150, "", "")
		require.NoError(t, err)

		gift, err := store.GetGiftByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.DefaultGiftIcon, gift.Icon)
		assert.Equal(t, entity.DefaultGiftCategory, gift.Category)
	})

	t.Run("rejects invalid entries", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Append(ctx, "", "", 150, "", "")
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = svc.Append(ctx, "Rose", "", -1, "", "")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("a free gift is allowed", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Append(ctx, "Sticker", "", 0, "", "")
		assert.NoError(t, err)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous listing carries no ownership state", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Append(ctx, "Rose", "", 150, "", "")
		require.NoError(t, err)
		_, err = svc.Append(ctx, "Teddy Bear", "", 300, "", "")
		require.NoError(t, err)

		entries, err := svc.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "Rose", entries[0].Name)
		assert.Equal(t, "Teddy Bear", entries[1].Name)
		for _, e := range entries {
			assert.False(t, e.Purchased)
		}
	})

	t.Run("per-user listing marks owned entries", func(t *testing.T) {
		svc, store := newService(t)
		roseID, err := svc.Append(ctx, "Rose", "", 150, "", "")
		require.NoError(t, err)
		_, err = svc.Append(ctx, "Teddy Bear", "", 300, "", "")
		require.NoError(t, err)

		require.NoError(t, store.CreateOwnership(ctx, &entity.Ownership{
			UserID:      7,
			GiftID:      roseID,
			PurchasedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}))

		entries, err := svc.List(ctx, 7)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[0].Purchased)
		assert.False(t, entries[1].Purchased)
	})

	t.Run("empty catalog lists as empty, not nil error", func(t *testing.T) {
		svc, _ := newService(t)

		entries, err := svc.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
