package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "gift-economy/internal/domain/error"
	"gift-economy/internal/domain/usecase/auth"
	"gift-economy/internal/domain/usecase/fakes"
)

func newService(t *testing.T) (*auth.Service, *fakes.Store) {
	t.Helper()
	clock := fakes.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := fakes.NewStore(clock)
	svc := auth.NewService(store, fakes.PlainHasher{}, clock, fakes.NewNopLogger(), 1000)
	return svc, store
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("grants the starting balance", func(t *testing.T) {
		svc, _ := newService(t)

		account, err := svc.Register(ctx, "alice", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, int64(1000), account.Balance())
		assert.False(t, account.IsAdmin)
		assert.False(t, account.IsBanned)
		assert.NotZero(t, account.ID)
	})

	t.Run("trims surrounding whitespace from the username", func(t *testing.T) {
		svc, _ := newService(t)

		account, err := svc.Register(ctx, "  bob  ", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "bob", account.Username)

		// The trimmed form collides with the trimmed original
		_, err = svc.Register(ctx, "bob ", "hunter2")
		assert.ErrorIs(t, err, errs.ErrDuplicateUsername)
	})

	t.Run("rejects a duplicate username", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Register(ctx, "alice", "hunter2")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "other")
		assert.ErrorIs(t, err, errs.ErrDuplicateUsername)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Register(ctx, "", "hunter2")
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = svc.Register(ctx, "   ", "hunter2")
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = svc.Register(ctx, "alice", "")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("stores a digest, not the secret", func(t *testing.T) {
		svc, store := newService(t)

		created, err := svc.Register(ctx, "alice", "hunter2")
		require.NoError(t, err)

		stored, err := store.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "hunter2", stored.PasswordHash)
		assert.True(t, fakes.PlainHasher{}.Verify("hunter2", stored.PasswordHash))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the account on valid credentials", func(t *testing.T) {
		svc, _ := newService(t)
		registered, err := svc.Register(ctx, "alice", "hunter2")
		require.NoError(t, err)

		account, err := svc.Login(ctx, "alice", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, account.ID)
		assert.Equal(t, int64(1000), account.Balance())
	})

	t.Run("rejects a wrong secret", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Register(ctx, "alice", "hunter2")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("maps an unknown username to invalid credentials", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Login(ctx, "nobody", "hunter2")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("rejects a banned account after the secret verifies", func(t *testing.T) {
		svc, store := newService(t)
		_, err := svc.Register(ctx, "alice", "hunter2")
		require.NoError(t, err)
		_, err = store.SetBanned(ctx, "alice", true)
		require.NoError(t, err)

		_, err = svc.Login(ctx, "alice", "hunter2")
		assert.ErrorIs(t, err, errs.ErrBanned)

		// A wrong secret on a banned account must not reveal the ban
		_, err = svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Login(ctx, "", "hunter2")
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = svc.Login(ctx, "alice", "")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}
