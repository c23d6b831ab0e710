package admin_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-economy/internal/domain/entity"
	errs "gift-economy/internal/domain/error"
	"gift-economy/internal/domain/usecase/admin"
	"gift-economy/internal/domain/usecase/catalog"
	"gift-economy/internal/domain/usecase/fakes"
	"gift-economy/internal/domain/usecase/ledger"
)

type fixture struct {
	store *fakes.Store
	clock *fakes.Clock
	svc   *admin.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := fakes.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := fakes.NewStore(clock)
	logger := fakes.NewNopLogger()
	gate := admin.NewGate(store, logger)
	cat := catalog.NewService(store.GiftRepo(), logger)
	ldg := ledger.NewLedger(store, logger)
	return &fixture{
		store: store,
		clock: clock,
		svc:   admin.NewService(gate, store, cat, ldg, logger),
	}
}

func (f *fixture) seedAccount(t *testing.T, username string, balance int64, isAdmin bool) *entity.Account {
	t.Helper()
	account, err := entity.NewAccount(username, "digest:x", balance, f.clock)
	require.NoError(t, err)
	require.NoError(t, f.store.Create(context.Background(), account))
	if isAdmin {
		_, err = f.store.SetAdmin(context.Background(), username, true)
		require.NoError(t, err)
	}
	return account
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()

	t.Run("grants a capability to an admin", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "root", 1000, true)

		gate := admin.NewGate(f.store, fakes.NewNopLogger())
		cap, err := gate.Authorize(ctx, "root")
		require.NoError(t, err)
		assert.Equal(t, "root", cap.Admin.Username)
	})

	t.Run("denies a regular user", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "alice", 1000, false)

		gate := admin.NewGate(f.store, fakes.NewNopLogger())
		_, err := gate.Authorize(ctx, "alice")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("denies an unknown username the same way", func(t *testing.T) {
		f := newFixture(t)

		gate := admin.NewGate(f.store, fakes.NewNopLogger())
		_, err := gate.Authorize(ctx, "nobody")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("revocation takes effect on the next call", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "root", 1000, true)

		gate := admin.NewGate(f.store, fakes.NewNopLogger())
		_, err := gate.Authorize(ctx, "root")
		require.NoError(t, err)

		_, err = f.store.SetAdmin(ctx, "root", false)
		require.NoError(t, err)

		_, err = gate.Authorize(ctx, "root")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

func TestAdjustBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("credits the target", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "root", 1000, true)
		f.seedAccount(t, "alice", 1000, false)

		account, err := f.svc.AdjustBalance(ctx, "root", "alice", 500)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), account.Balance())
	})

	t.Run("debits the target down to zero", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "root", 1000, true)
		f.seedAccount(t, "alice", 1000, false)

		account, err := f.svc.AdjustBalance(ctx, "root", "alice", -1000)
		require.NoError(t, err)
		assert.Equal(t, int64(0), account.Balance())
	})

	t.Run("a debit below zero fails like any other", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "root", 1000, true)
		target := f.seedAccount(t, "alice", 100, false)

		_, err := f.svc.AdjustBalance(ctx, "root", "alice", -101)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)

		stored, err := f.store.GetByID(ctx, target.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), stored.Balance())
	})

	t.Run("a non-admin caller changes nothing", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "mallory", 1000, false)
		target := f.seedAccount(t, "alice", 1000, false)

		_, err := f.svc.AdjustBalance(ctx, "mallory", "alice", 500)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)

		stored, err := f.store.GetByID(ctx, target.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), stored.Balance())
	})

	t.Run("rejects an unknown target", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "root", 1000, true)

		_, err := f.svc.AdjustBalance(ctx, "root", "nobody", 500)
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})
}

func TestSetBanAndSetAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("ban and unban", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "root", 1000, true)
		f.seedAccount(t, "alice", 1000, false)

		account, err := f.svc.SetBan(ctx, "root", "alice", true)
		require.NoError(t, err)
		assert.True(t, account.IsBanned)

		account, err = f.svc.SetBan(ctx, "root", "alice", false)
		require.NoError(t, err)
		assert.False(t, account.IsBanned)
	})

	t.Run("grant and revoke admin", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "root", 1000, true)
		f.seedAccount(t, "alice", 1000, false)

		account, err := f.svc.SetAdmin(ctx, "root", "alice", true)
		require.NoError(t, err)
		assert.True(t, account.IsAdmin)

		// The freshly promoted account can run gated operations
		_, err = f.svc.SetAdmin(ctx, "alice", "root", false)
		require.NoError(t, err)

		// And the demoted one no longer can
		_, err = f.svc.SetBan(ctx, "root", "alice", true)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("non-admin callers are rejected", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "mallory", 1000, false)
		f.seedAccount(t, "alice", 1000, false)

		_, err := f.svc.SetBan(ctx, "mallory", "alice", true)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)

		_, err = f.svc.SetAdmin(ctx, "mallory", "alice", true)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

func TestListAccounts(t *testing.T) {
	ctx := context.Background()

	t.Run("returns every account ordered by id", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "root", 1000, true)
		f.seedAccount(t, "alice", 1000, false)
		f.seedAccount(t, "bob", 500, false)

		accounts, err := f.svc.ListAccounts(ctx, "root")
		require.NoError(t, err)
		require.Len(t, accounts, 3)
		assert.Equal(t, "root", accounts[0].Username)
		assert.Equal(t, "alice", accounts[1].Username)
		assert.Equal(t, "bob", accounts[2].Username)
	})

	t.Run("denied to non-admins", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "alice", 1000, false)

		_, err := f.svc.ListAccounts(ctx, "alice")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

func TestAddGift(t *testing.T) {
	ctx := context.Background()

	t.Run("appends a catalog entry", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "root", 1000, true)

		giftID, err := f.svc.AddGift(ctx, "root", "Teddy Bear", "A soft bear", 300, "", "toys")
		require.NoError(t, err)
		require.NotZero(t, giftID)

		gift, err := f.store.GetGiftByID(ctx, giftID)
		require.NoError(t, err)
		assert.Equal(t, "Teddy Bear", gift.Name)
		assert.Equal(t, int64(300), gift.Price)
		assert.Equal(t, entity.DefaultGiftIcon, gift.Icon)
		assert.Equal(t, "toys", gift.Category)
	})

	t.Run("denied to non-admins", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "alice", 1000, false)

		_, err := f.svc.AddGift(ctx, "alice", "Teddy Bear", "", 300, "", "")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)

		gifts, err := f.store.ListGifts(ctx)
		require.NoError(t, err)
		assert.Empty(t, gifts)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "root", 1000, true)

		_, err := f.svc.AddGift(ctx, "root", "Teddy Bear", "", -1, "", "")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}
