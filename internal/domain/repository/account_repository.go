// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"certshop/internal/domain/entity"
	"certshop/internal/errors"
)

// Domain-specific errors for account persistence.
var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateAccount is returned when the email or customer name is already taken.
	ErrDuplicateAccount = errors.New("account already exists")
)

// AccountRepository defines the standard operations for account persistence.
type AccountRepository interface {
	// Create persists a new account record.
	// Returns ErrDuplicateAccount when the email or customer name is taken.
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail retrieves a single account by email.
	// Returns ErrAccountNotFound when no such account exists.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByCustomerID retrieves a single account by its customer ID.
	FindByCustomerID(ctx context.Context, customerID string) (*entity.Account, error)

	// Activate flips the activate flag on. Activating an already active
	// account is a no-op, not an error.
	Activate(ctx context.Context, email string) error

	// RecordLogin stamps last_login with the current time.
	RecordLogin(ctx context.Context, email string) error

	// UpdatePassword overwrites the stored password hash and bumps the
	// password reset counter.
	UpdatePassword(ctx context.Context, email string, passwordHash string) error
}
