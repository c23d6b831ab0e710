// Package fakes provides in-memory implementations of the domain ports for
// usecase tests. The unit of work takes a snapshot on Begin and restores it on
// Rollback, so all-or-nothing behavior is exercised honestly, and holds a
// mutex from Begin to Commit/Rollback, mirroring the per-account
// serialization the database row lock provides.
package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"gift-economy/internal/domain/entity"
	errs "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	"gift-economy/internal/domain/port/persistence"
)

type txKeyType struct{}

var txKey txKeyType

type ownershipKey struct {
	userID uint64
	giftID uint64
}

type state struct {
	accounts   map[uint64]entity.Account
	byUsername map[string]uint64
	gifts      map[uint64]entity.Gift
	ownerships map[ownershipKey]entity.Ownership
	claims     map[uint64]time.Time
}

func (s *state) clone() *state {
	c := &state{
		accounts:   make(map[uint64]entity.Account, len(s.accounts)),
		byUsername: make(map[string]uint64, len(s.byUsername)),
		gifts:      make(map[uint64]entity.Gift, len(s.gifts)),
		ownerships: make(map[ownershipKey]entity.Ownership, len(s.ownerships)),
		claims:     make(map[uint64]time.Time, len(s.claims)),
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.byUsername {
		c.byUsername[k] = v
	}
	for k, v := range s.gifts {
		c.gifts[k] = v
	}
	for k, v := range s.ownerships {
		c.ownerships[k] = v
	}
	for k, v := range s.claims {
		c.claims[k] = v
	}
	return c
}

// Store is an in-memory stand-in for the persistent store. It implements
// every repository port plus the UnitOfWork.
type Store struct {
	txMu     sync.Mutex
	state    *state
	snapshot *state

	nextAccountID   uint64
	nextGiftID      uint64
	nextOwnershipID uint64

	tp coreport.TimeProvider
}

// NewStore creates an empty in-memory store
func NewStore(tp coreport.TimeProvider) *Store {
	return &Store{
		state: &state{
			accounts:   make(map[uint64]entity.Account),
			byUsername: make(map[string]uint64),
			gifts:      make(map[uint64]entity.Gift),
			ownerships: make(map[ownershipKey]entity.Ownership),
			claims:     make(map[uint64]time.Time),
		},
		tp: tp,
	}
}

var (
	_ persistence.AccountRepository   = (*Store)(nil)
	_ persistence.GiftRepository      = giftRepo{}
	_ persistence.OwnershipRepository = ownershipRepo{}
	_ persistence.ClaimRepository     = (*Store)(nil)
	_ persistence.UnitOfWork          = (*Store)(nil)
)

// giftRepo and ownershipRepo adapt the store to ports whose method names
// collide with the account repository's
type giftRepo struct{ s *Store }

func (r giftRepo) GetByID(ctx context.Context, id uint64) (*entity.Gift, error) {
	return r.s.GetGiftByID(ctx, id)
}
func (r giftRepo) Create(ctx context.Context, gift *entity.Gift) error {
	return r.s.CreateGift(ctx, gift)
}
func (r giftRepo) List(ctx context.Context) ([]*entity.Gift, error) {
	return r.s.ListGifts(ctx)
}
func (r giftRepo) ListForUser(ctx context.Context, userID uint64) ([]*entity.CatalogEntry, error) {
	return r.s.ListGiftsForUser(ctx, userID)
}

type ownershipRepo struct{ s *Store }

func (r ownershipRepo) Exists(ctx context.Context, userID, giftID uint64) (bool, error) {
	return r.s.OwnershipExists(ctx, userID, giftID)
}
func (r ownershipRepo) Create(ctx context.Context, ownership *entity.Ownership) error {
	return r.s.CreateOwnership(ctx, ownership)
}

// lock takes the store mutex unless the context already carries the unit of
// work, which holds it from Begin to Commit/Rollback
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey) != nil {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

// --- UnitOfWork ---

func (s *Store) Begin(ctx context.Context) (context.Context, error) {
	s.txMu.Lock()
	s.snapshot = s.state.clone()
	return context.WithValue(ctx, txKey, true), nil
}

func (s *Store) Commit(ctx context.Context) error {
	s.snapshot = nil
	s.txMu.Unlock()
	return nil
}

func (s *Store) Rollback(ctx context.Context) error {
	s.state = s.snapshot
	s.snapshot = nil
	s.txMu.Unlock()
	return nil
}

func (s *Store) Accounts(ctx context.Context) persistence.AccountRepository     { return s }
func (s *Store) Gifts(ctx context.Context) persistence.GiftRepository           { return giftRepo{s: s} }
func (s *Store) Ownerships(ctx context.Context) persistence.OwnershipRepository { return ownershipRepo{s: s} }
func (s *Store) Claims(ctx context.Context) persistence.ClaimRepository         { return s }

// GiftRepo returns the store's gift repository view
func (s *Store) GiftRepo() persistence.GiftRepository { return giftRepo{s: s} }

// OwnershipRepo returns the store's ownership repository view
func (s *Store) OwnershipRepo() persistence.OwnershipRepository { return ownershipRepo{s: s} }

// --- AccountRepository ---

func (s *Store) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	defer s.lock(ctx)()
	acct, ok := s.state.accounts[id]
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	return &acct, nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	defer s.lock(ctx)()
	id, ok := s.state.byUsername[username]
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	acct := s.state.accounts[id]
	return &acct, nil
}

func (s *Store) GetForUpdate(ctx context.Context, id uint64) (*entity.Account, error) {
	// The unit-of-work mutex is the row lock here
	return s.GetByID(ctx, id)
}

func (s *Store) Create(ctx context.Context, account *entity.Account) error {
	defer s.lock(ctx)()
	if _, exists := s.state.byUsername[account.Username]; exists {
		return errs.ErrDuplicateUsername
	}
	s.nextAccountID++
	account.ID = s.nextAccountID
	s.state.accounts[account.ID] = *account
	s.state.byUsername[account.Username] = account.ID
	return nil
}

func (s *Store) List(ctx context.Context) ([]*entity.Account, error) {
	defer s.lock(ctx)()
	out := make([]*entity.Account, 0, len(s.state.accounts))
	for _, acct := range s.state.accounts {
		a := acct
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateBalance(ctx context.Context, account *entity.Account) error {
	defer s.lock(ctx)()
	if _, ok := s.state.accounts[account.ID]; !ok {
		return errs.ErrAccountNotFound
	}
	s.state.accounts[account.ID] = *account
	return nil
}

func (s *Store) AdjustBalance(ctx context.Context, id uint64, delta int64) (*entity.Account, error) {
	defer s.lock(ctx)()
	acct, ok := s.state.accounts[id]
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	newBalance := acct.Balance() + delta
	if newBalance < 0 {
		return nil, errs.NewInsufficientFundsError(id, -delta, acct.Balance())
	}
	acct.SetBalance(newBalance, s.tp)
	s.state.accounts[id] = acct
	return &acct, nil
}

func (s *Store) SetAdmin(ctx context.Context, username string, granted bool) (*entity.Account, error) {
	defer s.lock(ctx)()
	id, ok := s.state.byUsername[username]
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	acct := s.state.accounts[id]
	acct.IsAdmin = granted
	s.state.accounts[id] = acct
	return &acct, nil
}

func (s *Store) SetBanned(ctx context.Context, username string, banned bool) (*entity.Account, error) {
	defer s.lock(ctx)()
	id, ok := s.state.byUsername[username]
	if !ok {
		return nil, errs.ErrAccountNotFound
	}
	acct := s.state.accounts[id]
	acct.IsBanned = banned
	s.state.accounts[id] = acct
	return &acct, nil
}

// --- GiftRepository ---

func (s *Store) GetGiftByID(ctx context.Context, id uint64) (*entity.Gift, error) {
	defer s.lock(ctx)()
	gift, ok := s.state.gifts[id]
	if !ok {
		return nil, errs.ErrGiftNotFound
	}
	return &gift, nil
}

func (s *Store) CreateGift(ctx context.Context, gift *entity.Gift) error {
	defer s.lock(ctx)()
	s.nextGiftID++
	gift.ID = s.nextGiftID
	s.state.gifts[gift.ID] = *gift
	return nil
}

func (s *Store) ListGifts(ctx context.Context) ([]*entity.Gift, error) {
	defer s.lock(ctx)()
	out := make([]*entity.Gift, 0, len(s.state.gifts))
	for _, g := range s.state.gifts {
		gift := g
		out = append(out, &gift)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListGiftsForUser(ctx context.Context, userID uint64) ([]*entity.CatalogEntry, error) {
	gifts, err := s.ListGifts(ctx)
	if err != nil {
		return nil, err
	}
	defer s.lock(ctx)()
	out := make([]*entity.CatalogEntry, 0, len(gifts))
	for _, g := range gifts {
		_, owned := s.state.ownerships[ownershipKey{userID: userID, giftID: g.ID}]
		out = append(out, &entity.CatalogEntry{Gift: *g, Purchased: owned})
	}
	return out, nil
}

// --- OwnershipRepository ---

func (s *Store) OwnershipExists(ctx context.Context, userID, giftID uint64) (bool, error) {
	defer s.lock(ctx)()
	_, ok := s.state.ownerships[ownershipKey{userID: userID, giftID: giftID}]
	return ok, nil
}

func (s *Store) CreateOwnership(ctx context.Context, ownership *entity.Ownership) error {
	defer s.lock(ctx)()
	key := ownershipKey{userID: ownership.UserID, giftID: ownership.GiftID}
	if _, exists := s.state.ownerships[key]; exists {
		return errs.ErrAlreadyOwned
	}
	s.nextOwnershipID++
	ownership.ID = s.nextOwnershipID
	s.state.ownerships[key] = *ownership
	return nil
}

// --- ClaimRepository ---

func (s *Store) Get(ctx context.Context, userID uint64) (*entity.ClaimRecord, error) {
	defer s.lock(ctx)()
	day, ok := s.state.claims[userID]
	if !ok {
		return nil, nil
	}
	return &entity.ClaimRecord{UserID: userID, LastClaimDate: day}, nil
}

func (s *Store) Upsert(ctx context.Context, userID uint64, day time.Time) error {
	defer s.lock(ctx)()
	s.state.claims[userID] = day
	return nil
}
