package ledger_test

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
)

func seedAccount(t *testing.T, store *fakes.Store, clock *fakes.Clock, username string, balance int64) *entity.Account {
	t.Helper()
	account, err := entity.NewAccount(username, "digest:x", balance, clock)
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), account))
	return account
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	clock := fakes.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	t.Run("applies a credit", func(t *testing.T) {
		store := fakes.NewStore(clock)
		ldg := ledger.NewLedger(store, fakes.NewNopLogger())
		acct := seedAccount(t, store, clock, "alice", 1000)

		updated, err := ldg.Adjust(ctx, acct.ID, 250, ledger.ReasonAdminAdjustment)
		require.NoError(t, err)
		assert.Equal(t, int64(1250), updated.Balance())
	})

	t.Run("applies a debit down to zero", func(t *testing.T) {
		store := fakes.NewStore(clock)
		ldg := ledger.NewLedger(store, fakes.NewNopLogger())
		acct := seedAccount(t, store, clock, "alice", 1000)

		updated, err := ldg.Adjust(ctx, acct.ID, -1000, ledger.ReasonAdminAdjustment)
		require.NoError(t, err)
		assert.Equal(t, int64(0), updated.Balance())
	})

	t.Run("rejects a debit that would go negative", func(t *testing.T) {
		store := fakes.NewStore(clock)
		ldg := ledger.NewLedger(store, fakes.NewNopLogger())
		acct := seedAccount(t, store, clock, "alice", 50)

		_, err := ldg.Adjust(ctx, acct.ID, -51, ledger.ReasonAdminAdjustment)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)

		stored, err := store.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(50), stored.Balance())
	})

	t.Run("rejects an unknown account", func(t *testing.T) {
		store := fakes.NewStore(clock)
		ldg := ledger.NewLedger(store, fakes.NewNopLogger())

		_, err := ldg.Adjust(ctx, 42, 100, ledger.ReasonAdminAdjustment)
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})

	t.Run("rejects an unknown reason", func(t *testing.T) {
		store := fakes.NewStore(clock)
		ldg := ledger.NewLedger(store, fakes.NewNopLogger())
		acct := seedAccount(t, store, clock, "alice", 1000)

		_, err := ldg.Adjust(ctx, acct.ID, 100, ledger.Reason("typo"))
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("concurrent adjustments never lose an update", func(t *testing.T) {
		store := fakes.NewStore(clock)
		ldg := ledger.NewLedger(store, fakes.NewNopLogger())
		acct := seedAccount(t, store, clock, "alice", 0)

		const n = 50
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				_, err := ldg.Adjust(ctx, acct.ID, 10, ledger.ReasonAdminAdjustment)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		stored, err := store.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(n*10), stored.Balance())
	})
}

func TestIsValidReason(t *testing.T) {
	for _, r := range []ledger.Reason{
		ledger.ReasonRegistrationGrant,
		ledger.ReasonAdminAdjustment,
		ledger.ReasonRewardClaim,
		ledger.ReasonPurchaseDebit,
	} {
		assert.True(t, ledger.IsValidReason(r), string(r))
	}
	assert.False(t, ledger.IsValidReason(ledger.Reason("")))
	assert.False(t, ledger.IsValidReason(ledger.Reason("refund")))
}
