package reward_test

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
	"gift-economy/internal/domain/usecase/reward"
)

type fixture struct {
	store *fakes.Store
	clock *fakes.Clock
	coord *reward.Coordinator
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
		coord: reward.NewCoordinator(store, ldg, clock, logger, 100),
	}
}

func (f *fixture) seedAccount(t *testing.T, username string, balance int64) *entity.Account {
	t.Helper()
	account, err := entity.NewAccount(username, "digest:x", balance, f.clock)
	require.NoError(t, err)
	require.NoError(t, f.store.Create(context.Background(), account))
	return account
}

func TestClaim(t *testing.T) {
	ctx := context.Background()

	t.Run("credits the reward on first claim of the day", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)

		result, err := f.coord.Claim(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1100), result.NewBalance)
		assert.Equal(t, int64(100), result.RewardAmount)
	})

	t.Run("rejects a second claim the same day", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)

		_, err := f.coord.Claim(ctx, acct.ID)
		require.NoError(t, err)

		_, err = f.coord.Claim(ctx, acct.ID)
		assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)

		stored, err := f.store.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1100), stored.Balance(), "reward credited exactly once")
	})

	t.Run("allows a claim again after midnight", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)

		_, err := f.coord.Claim(ctx, acct.ID)
		require.NoError(t, err)

		// 12:00 plus 13 hours crosses into the next calendar day
		f.clock.Advance(13 * time.Hour)

		result, err := f.coord.Claim(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1200), result.NewBalance)
	})

	t.Run("late evening claim still blocks until the date changes", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)

		f.clock.Advance(11 * time.Hour) // 23:00
		_, err := f.coord.Claim(ctx, acct.ID)
		require.NoError(t, err)

		f.clock.Advance(30 * time.Minute) // 23:30, same day
		_, err = f.coord.Claim(ctx, acct.ID)
		assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)

		f.clock.Advance(31 * time.Minute) // 00:01 next day
		_, err = f.coord.Claim(ctx, acct.ID)
		require.NoError(t, err)
	})

	t.Run("rejects an unknown account", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.coord.Claim(ctx, 999)
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})

	t.Run("rejects a zero user id", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.coord.Claim(ctx, 0)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("claims are independent per account", func(t *testing.T) {
		f := newFixture(t)
		alice := f.seedAccount(t, "alice", 1000)
		bob := f.seedAccount(t, "bob", 1000)

		_, err := f.coord.Claim(ctx, alice.ID)
		require.NoError(t, err)

		result, err := f.coord.Claim(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1100), result.NewBalance)
	})
}

func TestClaimConcurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("one winner per day", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)

		const n = 20
		results := make(chan error, n)
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				_, err := f.coord.Claim(ctx, acct.ID)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var successes, rejections int
		for err := range results {
			switch {
			case err == nil:
				successes++
			case errs.IsAlreadyClaimedError(err):
				rejections++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, n-1, rejections)

		stored, err := f.store.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1100), stored.Balance(), "reward credited exactly once")
	})
}

func TestStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("claimable before the first claim", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)

		status, err := f.coord.Status(ctx, acct.ID)
		require.NoError(t, err)
		assert.True(t, status.CanClaim)
		assert.Equal(t, int64(100), status.RewardAmount)
	})

	t.Run("not claimable after claiming", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)

		_, err := f.coord.Claim(ctx, acct.ID)
		require.NoError(t, err)

		status, err := f.coord.Status(ctx, acct.ID)
		require.NoError(t, err)
		assert.False(t, status.CanClaim)
	})

	t.Run("claimable again the next day", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)

		_, err := f.coord.Claim(ctx, acct.ID)
		require.NoError(t, err)
		f.clock.Advance(24 * time.Hour)

		status, err := f.coord.Status(ctx, acct.ID)
		require.NoError(t, err)
		assert.True(t, status.CanClaim)
	})

	t.Run("does not mutate anything", func(t *testing.T) {
		f := newFixture(t)
		acct := f.seedAccount(t, "alice", 1000)

		for i := 0; i < 3; i++ {
			_, err := f.coord.Status(ctx, acct.ID)
			require.NoError(t, err)
		}

		stored, err := f.store.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), stored.Balance())
	})
}
