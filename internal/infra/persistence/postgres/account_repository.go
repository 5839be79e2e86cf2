package postgres

import (
	"context"
	"time"

	"certshop/internal/domain/entity"
	domainerrors "certshop/internal/domain/errors"
	"certshop/internal/domain/repository"
	"certshop/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the repository.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Create persists a new customer account.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateAccount
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required account information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.CreatedAt = accountM.CreatedAt

	return nil
}

// FindByEmail retrieves an account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// FindByCustomerID retrieves an account by its customer ID.
func (repo *accountRepository) FindByCustomerID(ctx context.Context, customerID string) (*entity.Account, error) {
	var accountM model.AccountModel

	if err := repo.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by customer ID")
	}

	return toAccountDomain(&accountM), nil
}

// Activate marks an account as activated. Activating an already active
// account is a no-op.
func (repo *accountRepository) Activate(ctx context.Context, email string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email = ?", email).
		Update("activate", true)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to activate account")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// RecordLogin updates the last login timestamp of an account.
func (repo *accountRepository) RecordLogin(ctx context.Context, email string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email = ?", email).
		Update("last_login", time.Now())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to record login")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// UpdatePassword replaces the password hash, extends the password expiry
// and bumps the reset counter.
func (repo *accountRepository) UpdatePassword(ctx context.Context, email string, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"password":             passwordHash,
			"password_expiry":      time.Now().Add(entity.PasswordExpiryHorizon),
			"password_reset_count": gorm.Expr("password_reset_count + 1"),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update password")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		CustomerID:         data.CustomerID,
		CustomerName:       data.CustomerName,
		Email:              data.Email,
		PhoneNumber:        data.PhoneNumber,
		Address:            data.Address,
		PayMethods:         data.PayMethods,
		Activate:           data.Activate,
		LastLogin:          data.LastLogin,
		CreatedAt:          data.CreatedAt,
		PasswordExpiry:     data.PasswordExpiry,
		PasswordResetCount: data.PasswordResetCount,
		PasswordHash:       data.Password,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		CustomerID:         data.CustomerID,
		CustomerName:       data.CustomerName,
		Email:              data.Email,
		PhoneNumber:        data.PhoneNumber,
		Address:            data.Address,
		PayMethods:         model.StringList(data.PayMethods),
		Activate:           data.Activate,
		LastLogin:          data.LastLogin,
		CreatedAt:          data.CreatedAt,
		PasswordExpiry:     data.PasswordExpiry,
		PasswordResetCount: data.PasswordResetCount,
		Password:           data.PasswordHash,
	}
}
