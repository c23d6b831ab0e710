package purchase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-economy/internal/domain/entity"
	errs "gift-economy/internal/domain/error"
	"gift-economy/internal/domain/usecase/fakes"
	"gift-economy/internal/domain/usecase/ledger"
	"gift-economy/internal/domain/usecase/purchase"
)

type fixture struct {
	store *fakes.Store
	clock *fakes.Clock
	coord *purchase.Coordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := fakes.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := fakes.NewStore(clock)
	logger := fakes.NewNopLogger()
	ldg := ledger.NewLedger(store, logger)
	return &fixture{
		store: store,
		clock: clock,
		coord: purchase.NewCoordinator(store, ldg, clock, logger),
	}
}

func (f *fixture) seedAccount(t *testing.T, username string, balance int64) *entity.Account {
	t.Helper()
	account, err := entity.NewAccount(username, "digest:x", balance, f.clock)
	require.NoError(t, err)
	require.NoError(t, f.store.Create(context.Background(), account))
	return account
}

func (f *fixture) seedGift(t *testing.T, name string, price int64) *entity.Gift {
	t.Helper()
	gift, err := entity.NewGift(name, "", price, "", "")
	require.NoError(t, err)
	require.NoError(t, f.store.CreateGift(context.Background(), gift))
	return gift
}

func TestPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("debits the price and records ownership", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)
		gift := f.seedGift(t, "Teddy Bear", 300)

		result, err := f.coord.Purchase(ctx, acct.ID, gift.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(700), result.NewBalance)
		assert.Equal(t, gift.ID, result.Gift.ID)

		owned, err := f.store.OwnershipExists(ctx, acct.ID, gift.ID)
		require.NoError(t, err)
		assert.True(t, owned)

		stored, err := f.store.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(700), stored.Balance())
	})

	t.Run("allows a purchase that drains the balance to zero", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 300)
		gift := f.seedGift(t, "Teddy Bear", 300)

		result, err := f.coord.Purchase(ctx, acct.ID, gift.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.NewBalance)
	})

	t.Run("rejects insufficient funds and leaves the balance untouched", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 50)
		gift := f.seedGift(t, "Teddy Bear", 100)

		_, err := f.coord.Purchase(ctx, acct.ID, gift.ID)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)

		stored, err := f.store.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(50), stored.Balance())

		owned, err := f.store.OwnershipExists(ctx, acct.ID, gift.ID)
		require.NoError(t, err)
		assert.False(t, owned)
	})

	t.Run("rejects a repeat purchase without debiting again", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)
		gift := f.seedGift(t, "Teddy Bear", 300)

		_, err := f.coord.Purchase(ctx, acct.ID, gift.ID)
		require.NoError(t, err)

		_, err = f.coord.Purchase(ctx, acct.ID, gift.ID)
		assert.ErrorIs(t, err, errs.ErrAlreadyOwned)

		stored, err := f.store.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(700), stored.Balance())
	})

	t.Run("rejects an unknown gift", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)

		_, err := f.coord.Purchase(ctx, acct.ID, 999)
		assert.ErrorIs(t, err, errs.ErrGiftNotFound)
	})

	t.Run("rejects an unknown account", func(t *testing.T) {
		f := newFixture(t)
		gift := f.seedGift(t, "Teddy Bear", 300)

		_, err := f.coord.Purchase(ctx, 999, gift.ID)
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})

	t.Run("rejects zero identifiers", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.coord.Purchase(ctx, 0, 1)
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = f.coord.Purchase(ctx, 1, 0)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("different gifts stack their debits", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)
		bear := f.seedGift(t, "Teddy Bear", 300)
		rose := f.seedGift(t, "Rose", 150)

		_, err := f.coord.Purchase(ctx, acct.ID, bear.ID)
		require.NoError(t, err)
		result, err := f.coord.Purchase(ctx, acct.ID, rose.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(550), result.NewBalance)
	})
}

func TestPurchaseConcurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("same gift has exactly one winner", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)
		gift := f.seedGift(t, "Teddy Bear", 300)

		const n = 20
		results := make(chan error, n)
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				_, err := f.coord.Purchase(ctx, acct.ID, gift.ID)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var successes, duplicates int
		for err := range results {
			switch {
			case err == nil:
				successes++
			case errs.IsAlreadyOwnedError(err):
				duplicates++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, n-1, duplicates)

		stored, err := f.store.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(700), stored.Balance(), "price debited exactly once")
	})

	t.Run("funds cap the number of winners across gifts", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 500)

		const n = 10
		gifts := make([]*entity.Gift, n)
		for i := range gifts {
			gifts[i] = f.seedGift(t, "Gift", 200)
		}

		results := make(chan error, n)
		var wg sync.WaitGroup
		wg.Add(n)
		for _, g := range gifts {
			go func(giftID uint64) {
				defer wg.Done()
				_, err := f.coord.Purchase(ctx, acct.ID, giftID)
				results <- err
			}(g.ID)
		}
		wg.Wait()
		close(results)

		var successes, rejections int
		for err := range results {
			switch {
			case err == nil:
				successes++
			case errs.IsInsufficientFundsError(err):
				rejections++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		// 500 buys exactly two gifts at 200 each
		assert.Equal(t, 2, successes)
		assert.Equal(t, n-2, rejections)

		stored, err := f.store.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), stored.Balance())
	})
}
