package admin

import (
	"context"

	"gift-economy/internal/domain/entity"
	errs "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	"gift-economy/internal/domain/port/persistence"
	"gift-economy/internal/domain/usecase/catalog"
	"gift-economy/internal/domain/usecase/ledger"
)

// Service bundles the gated administrative operations. Every method performs
// the privilege check first; nothing else runs when it fails.
type Service struct {
	gate     *Gate
	accounts persistence.AccountRepository
	catalog  *catalog.Service
	ledger   *ledger.Ledger
	logger   coreport.Logger
}

// NewService creates a new admin service
func NewService(
	gate *Gate,
	accounts persistence.AccountRepository,
	cat *catalog.Service,
	ldg *ledger.Ledger,
	logger coreport.Logger,
) *Service {
	return &Service{
		gate:     gate,
		accounts: accounts,
		catalog:  cat,
		ledger:   ldg,
		logger:   logger,
	}
}

// ListAccounts returns every account ordered by ID. The credential digest is
// stripped by the DTO layer; the usecase hands out entities as stored.
func (s *Service) ListAccounts(ctx context.Context, adminUsername string) ([]*entity.Account, error) {
	if _, err := s.gate.Authorize(ctx, adminUsername); err != nil {
		return nil, err
	}
	return s.accounts.List(ctx)
}

// AdjustBalance applies a signed delta to the target's balance through the
// ledger. A debit that would drive the balance negative fails with
// ErrInsufficientFunds, same as a purchase; admin traffic gets no exemption
// from the non-negative invariant.
func (s *Service) AdjustBalance(ctx context.Context, adminUsername, targetUsername string, delta int64) (*entity.Account, error) {
	cap, err := s.gate.Authorize(ctx, adminUsername)
	if err != nil {
		return nil, err
	}
	if targetUsername == "" {
		return nil, errs.ErrValidation
	}

	target, err := s.accounts.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	account, err := s.ledger.Adjust(ctx, target.ID, delta, ledger.ReasonAdminAdjustment)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin balance adjustment", map[string]any{
		"admin":       cap.Admin.Username,
		"target":      targetUsername,
		"delta":       delta,
		"new_balance": account.Balance(),
	})

	return account, nil
}

// SetBan flips the ban flag on the target account
func (s *Service) SetBan(ctx context.Context, adminUsername, targetUsername string, banned bool) (*entity.Account, error) {
	cap, err := s.gate.Authorize(ctx, adminUsername)
	if err != nil {
		return nil, err
	}
	if targetUsername == "" {
		return nil, errs.ErrValidation
	}

	account, err := s.accounts.SetBanned(ctx, targetUsername, banned)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Ban flag changed", map[string]any{
		"admin":  cap.Admin.Username,
		"target": targetUsername,
		"banned": banned,
	})

	return account, nil
}

// SetAdmin grants or revokes administrative privilege on the target account
func (s *Service) SetAdmin(ctx context.Context, adminUsername, targetUsername string, granted bool) (*entity.Account, error) {
	cap, err := s.gate.Authorize(ctx, adminUsername)
	if err != nil {
		return nil, err
	}
	if targetUsername == "" {
		return nil, errs.ErrValidation
	}

	account, err := s.accounts.SetAdmin(ctx, targetUsername, granted)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin flag changed", map[string]any{
		"admin":   cap.Admin.Username,
		"target":  targetUsername,
		"granted": granted,
	})

	return account, nil
}

// AddGift appends a catalog entry after the privilege check
func (s *Service) AddGift(ctx context.Context, adminUsername, name, description string, price int64, icon, category string) (uint64, error) {
	cap, err := s.gate.Authorize(ctx, adminUsername)
	if err != nil {
		return 0, err
	}

	giftID, err := s.catalog.Append(ctx, name, description, price, icon, category)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Catalog entry added by admin", map[string]any{
		"admin":   cap.Admin.Username,
		"gift_id": giftID,
	})

	return giftID, nil
}
