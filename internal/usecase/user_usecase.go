// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"certshop/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new customer account.
type RegisterInput struct {
	CustomerName string
	Email        string
	Password     string
	PhoneNumber  string
	Address      string
}

// LoginInput defines the data required for a customer to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ChangePasswordInput defines the data required to change a password while
// logged in.
type ChangePasswordInput struct {
	CustomerID  string
	OldPassword string
	NewPassword string
}

// ResetForgottenPasswordInput defines the data required to reset a password
// with a recovery token from email.
type ResetForgottenPasswordInput struct {
	Token       string
	OldPassword string
	NewPassword string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's basic information.
type RegisterOutput struct {
	Account *entity.Account
}

// LoginOutput returns the session credentials after a successful login.
type LoginOutput struct {
	AccessToken string
	CSRFToken   string
	Account     *entity.Account
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	VerifyAccount(ctx context.Context, token string) error
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
	RecoverPassword(ctx context.Context, email string) error
	ResetForgottenPassword(ctx context.Context, input *ResetForgottenPasswordInput) error
	GetProfile(ctx context.Context, customerID string) (*entity.Account, error)
}
