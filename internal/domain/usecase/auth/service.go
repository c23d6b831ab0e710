package auth

import (
	"context"
	"strings"

	"gift-economy/internal/domain/entity"
	errs "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	"gift-economy/internal/domain/port/persistence"
)

// Service implements registration and login. It owns no balance logic beyond
// the one-time registration grant, which it records through the ledger reason
// taxonomy by way of the starting balance baked into a fresh account.
type Service struct {
	accounts        persistence.AccountRepository
	hasher          coreport.PasswordHasher
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	startingBalance int64
}

// NewService creates a new auth service
func NewService(
	accounts persistence.AccountRepository,
	hasher coreport.PasswordHasher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	startingBalance int64,
) *Service {
	return &Service{
		accounts:        accounts,
		hasher:          hasher,
		timeProvider:    timeProvider,
		logger:          logger,
		startingBalance: startingBalance,
	}
}

// Register creates an account with the fixed starting balance.
// The username unique index decides duplicate races; there is no
// check-then-insert window.
func (s *Service) Register(ctx context.Context, username, secret string) (*entity.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || secret == "" {
		return nil, errs.ErrValidation
	}

	digest, err := s.hasher.Hash(secret)
	if err != nil {
		s.logger.Error("Failed to hash secret", map[string]any{
			"username": username,
			"error":    err.Error(),
		})
		return nil, errs.ErrInternalServer
	}

	account, err := entity.NewAccount(username, digest, s.startingBalance, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		s.logger.Warn("Registration rejected", map[string]any{
			"username": username,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Account registered", map[string]any{
		"user_id":          account.ID,
		"username":         account.Username,
		"starting_balance": account.Balance(),
	})

	return account, nil
}

// Login verifies credentials and returns the account. The ban flag is checked
// only after the secret verifies, so an unauthenticated caller cannot probe
// ban status.
func (s *Service) Login(ctx context.Context, username, secret string) (*entity.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || secret == "" {
		return nil, errs.ErrValidation
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errs.IsNotFoundError(err) {
			// Indistinguishable from a bad secret
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(secret, account.PasswordHash) {
		s.logger.Warn("Credential verification failed", map[string]any{
			"username": username,
		})
		return nil, errs.ErrInvalidCredentials
	}

	if account.IsBanned {
		s.logger.Warn("Banned account attempted login", map[string]any{
			"user_id":  account.ID,
			"username": username,
		})
		return nil, errs.ErrBanned
	}

	s.logger.Info("Login succeeded", map[string]any{
		"user_id":  account.ID,
		"username": username,
	})

	return account, nil
}
