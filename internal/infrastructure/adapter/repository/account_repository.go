package repository

import (
	"context"
	"errors"
	"fmt"

	"gift-economy/internal/domain/entity"
	errs "gift-economy/internal/domain/error"
	coreport "gift-economy/internal/domain/port/core"
	"gift-economy/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository implements the account persistence port using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts an account model to an entity
func (r *AccountRepository) modelToEntity(accountModel *model.Account) (*entity.Account, error) {
	account, err := entity.NewAccount(accountModel.Username, accountModel.PasswordHash, accountModel.Balance, r.timeProvider)
	if err != nil {
		r.logger.Error("Failed to create account entity", map[string]any{
			"user_id": accountModel.ID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: failed to create account entity: %s", errs.ErrInternalServer, err.Error())
	}

	account.ID = accountModel.ID
	account.IsAdmin = accountModel.IsAdmin
	account.IsBanned = accountModel.IsBanned
	account.CreatedAt = accountModel.CreatedAt
	account.UpdatedAt = accountModel.UpdatedAt

	return account, nil
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Account not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrAccountNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateUsername
	}
	if r.errorClassifier.IsConstraintError(err) {
		return errs.ErrConstraintViolation
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	var accountModel model.Account
	result := r.db.WithContext(ctx).First(&accountModel, id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account", result.Error, id)
	}

	return r.modelToEntity(&accountModel)
}

// GetByUsername retrieves an account by its unique username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var accountModel model.Account
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&accountModel)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account by username", result.Error, 0)
	}

	return r.modelToEntity(&accountModel)
}

// GetForUpdate retrieves an account under an exclusive row lock. The lock is
// held until the enclosing transaction commits or rolls back, so every
// economic unit that starts here is serialized per account.
func (r *AccountRepository) GetForUpdate(ctx context.Context, id uint64) (*entity.Account, error) {
	var accountModel model.Account
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&accountModel, id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("locking account", result.Error, id)
	}

	return r.modelToEntity(&accountModel)
}

// Create persists a new account. The username unique index rejects a
// concurrent duplicate insert.
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.Account{
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		Balance:      account.Balance(),
		IsAdmin:      account.IsAdmin,
		IsBanned:     account.IsBanned,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&accountModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating account", result.Error, 0)
	}

	account.ID = accountModel.ID

	r.logger.Info("Account created", map[string]any{
		"user_id":  account.ID,
		"username": account.Username,
	})
	return nil
}

// List returns all accounts ordered by ID
func (r *AccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	var accountModels []model.Account
	result := r.db.WithContext(ctx).Order("id").Find(&accountModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing accounts", result.Error, 0)
	}

	accounts := make([]*entity.Account, 0, len(accountModels))
	for i := range accountModels {
		account, err := r.modelToEntity(&accountModels[i])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

// UpdateBalance persists the balance held by the entity
func (r *AccountRepository) UpdateBalance(ctx context.Context, account *entity.Account) error {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"balance":    account.Balance(),
			"updated_at": account.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating balance", result.Error, account.ID)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Account not found during balance update", map[string]any{
			"user_id": account.ID,
		})
		return errs.ErrAccountNotFound
	}

	return nil
}

// AdjustBalance applies a signed delta as one atomic compare-and-apply. The
// row is locked, the resulting balance checked against zero, and both the
// check and the write happen under the same lock. When the repository is
// already bound to a transaction gorm runs the inner block on a savepoint.
func (r *AccountRepository) AdjustBalance(ctx context.Context, id uint64, delta int64) (*entity.Account, error) {
	var account *entity.Account

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var accountModel model.Account
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&accountModel, id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return errs.ErrAccountNotFound
			}
			return result.Error
		}

		newBalance := accountModel.Balance + delta
		if newBalance < 0 {
			return errs.NewInsufficientFundsError(id, -delta, accountModel.Balance)
		}

		accountModel.Balance = newBalance
		accountModel.UpdatedAt = r.timeProvider.Now()

		result = tx.Model(&accountModel).Updates(map[string]interface{}{
			"balance":    accountModel.Balance,
			"updated_at": accountModel.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}

		var convErr error
		account, convErr = r.modelToEntity(&accountModel)
		return convErr
	})

	if err != nil {
		if errors.Is(err, errs.ErrAccountNotFound) || errors.Is(err, errs.ErrInsufficientFunds) {
			return nil, err
		}
		return nil, r.handleDatabaseError("adjusting balance", err, id)
	}

	return account, nil
}

// SetAdmin flips the administrative flag on the account with the username
func (r *AccountRepository) SetAdmin(ctx context.Context, username string, granted bool) (*entity.Account, error) {
	return r.setFlag(ctx, username, "is_admin", granted)
}

// SetBanned flips the ban flag on the account with the username
func (r *AccountRepository) SetBanned(ctx context.Context, username string, banned bool) (*entity.Account, error) {
	return r.setFlag(ctx, username, "is_banned", banned)
}

func (r *AccountRepository) setFlag(ctx context.Context, username, column string, value bool) (*entity.Account, error) {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("username = ?", username).
		Updates(map[string]interface{}{
			column:       value,
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return nil, r.handleDatabaseError("setting "+column, result.Error, 0)
	}
	if result.RowsAffected == 0 {
		return nil, errs.ErrAccountNotFound
	}

	return r.GetByUsername(ctx, username)
}
