// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"certshop/config"
	deliverycontext "certshop/internal/delivery/context"
	"certshop/internal/domain/entity"
	domainerrors "certshop/internal/domain/errors"
	"certshop/internal/domain/repository"
	"certshop/internal/domain/service"
	"certshop/internal/infra/mail"
	"certshop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	tokenSvc    service.TokenService
	csrfSvc     service.CSRFService
	mailer      service.Mailer
	mailCfg     *config.MailConfig
	logger      *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	CSRFService  service.CSRFService
	Mailer       service.Mailer
	Config       *config.Config
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	var mailCfg *config.MailConfig
	if params.Config != nil {
		mailCfg = params.Config.Mail
	}

	return &userService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		tokenSvc:    params.TokenService,
		csrfSvc:     params.CSRFService,
		mailer:      params.Mailer,
		mailCfg:     mailCfg,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete customer registration process. The new
// account starts inactive; a verification link is mailed to the customer.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	newAccount := buildNewAccountEntity(input, hashedPassword)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.NewAccountRepository()

		_, findErr := accountRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
		}
		if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check existing account")
		}

		if createErr := accountRepo.Create(ctx, newAccount); createErr != nil {
			if errors.Is(createErr, repository.ErrDuplicateAccount) {
				return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
			}

			return errors.Wrap(createErr, "failed to create account during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.sendVerificationMail(ctx, newAccount)

	srv.log(ctx).Debug("Registration completed", slog.String("customerID", newAccount.CustomerID))

	return &usecase.RegisterOutput{Account: newAccount}, nil
}

// sendVerificationMail mails the activation link. Mail failure does not fail
// the registration; the customer can request recovery later.
func (srv *userService) sendVerificationMail(ctx context.Context, account *entity.Account) {
	verifyToken, err := srv.tokenSvc.GenerateVerifyToken(account.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to generate verification token", slog.String("email", account.Email), slog.Any("error", err))

		return
	}

	accountMail := mail.NewAccountMail(srv.mailCfg, account.Email, account.CustomerName, verifyToken)
	if err := srv.mailer.Send(ctx, accountMail); err != nil {
		srv.log(ctx).Error("Failed to send verification mail", slog.String("email", account.Email), slog.Any("error", err))
	}
}

// VerifyAccount activates the account named by a verification token.
// Verifying an already active account succeeds without changes.
func (srv *userService) VerifyAccount(ctx context.Context, token string) error {
	claims, err := srv.tokenSvc.ValidateToken(token, service.PurposeVerify)
	if err != nil {
		srv.log(ctx).Warn("Account verification with invalid token", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrInvalidToken, "invalid verification token")
	}

	if err := srv.accountRepo.Activate(ctx, claims.Subject); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "account to verify not found")
		}

		return errors.Wrap(err, "failed to activate account")
	}

	srv.log(ctx).Info("Account verified", slog.String("email", claims.Subject))

	return nil
}

// Login checks the credentials and issues the session token pair. Inactive
// accounts cannot log in.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// Check password before the activation state so that the response does not
	// leak whether an unverified account uses that password.
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if !account.Activate {
		srv.log(ctx).Warn("Login attempt on inactive account", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrUserInactive, "account is not activated")
	}

	accessToken, err := srv.tokenSvc.GenerateAccessToken(account.CustomerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	csrfToken, err := srv.csrfSvc.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate CSRF token")
	}

	if err := srv.accountRepo.RecordLogin(ctx, account.Email); err != nil {
		// A stale last_login stamp is not worth failing the login over.
		srv.log(ctx).Warn("Failed to record login time", slog.String("email", input.Email), slog.Any("error", err))
	} else {
		account.LastLogin = time.Now()
	}

	srv.log(ctx).Debug("Customer logged in", slog.String("customerID", account.CustomerID))

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		CSRFToken:   csrfToken,
		Account:     account,
	}, nil
}

// ChangePassword replaces the password of a logged-in customer after
// verifying the old one.
func (srv *userService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	account, err := srv.accountRepo.FindByCustomerID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "account not found for password change")
		}

		return errors.Wrap(err, "failed to load account for password change")
	}

	if !srv.hasher.Check(input.OldPassword, account.PasswordHash) {
		srv.log(ctx).Warn("Password change with wrong old password", slog.String("customerID", input.CustomerID))

		return errors.Wrap(domainerrors.ErrInvalidOldPassword, "old password mismatch")
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	if err := srv.accountRepo.UpdatePassword(ctx, account.Email, hashedPassword); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password changed", slog.String("customerID", input.CustomerID))

	return nil
}

// RecoverPassword mails a password reset link to a registered email address.
func (srv *userService) RecoverPassword(ctx context.Context, email string) error {
	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "no account for recovery email")
		}

		return errors.Wrap(err, "failed to load account for password recovery")
	}

	resetToken, err := srv.tokenSvc.GeneratePasswordResetToken(account.Email)
	if err != nil {
		return errors.Wrap(err, "failed to generate password reset token")
	}

	resetMail := mail.ResetPasswordMail(srv.mailCfg, account.Email, resetToken)
	if err := srv.mailer.Send(ctx, resetMail); err != nil {
		srv.log(ctx).Error("Failed to send password reset mail", slog.String("email", email), slog.Any("error", err))

		return errors.Wrap(err, "failed to send password reset mail")
	}

	srv.log(ctx).Info("Password recovery mail sent", slog.String("email", email))

	return nil
}

// ResetForgottenPassword sets a new password using a reset token from email.
func (srv *userService) ResetForgottenPassword(ctx context.Context, input *usecase.ResetForgottenPasswordInput) error {
	claims, err := srv.tokenSvc.ValidateToken(input.Token, service.PurposePasswordReset)
	if err != nil {
		srv.log(ctx).Warn("Password reset with invalid token", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrInvalidToken, "invalid password reset token")
	}

	account, err := srv.accountRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "account for reset token not found")
		}

		return errors.Wrap(err, "failed to load account for password reset")
	}

	if !account.Activate {
		return errors.Wrap(domainerrors.ErrUserInactive, "account is not activated")
	}

	if !srv.hasher.Check(input.OldPassword, account.PasswordHash) {
		return errors.Wrap(domainerrors.ErrInvalidOldPassword, "old password does not match")
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	if err := srv.accountRepo.UpdatePassword(ctx, account.Email, hashedPassword); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password reset completed", slog.String("customerID", account.CustomerID))

	return nil
}

// GetProfile returns the account of the logged-in customer.
func (srv *userService) GetProfile(ctx context.Context, customerID string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile not found")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return account, nil
}

// buildNewAccountEntity applies the account defaults for a fresh registration.
func buildNewAccountEntity(input *usecase.RegisterInput, hashedPassword string) *entity.Account {
	now := time.Now()

	return &entity.Account{
		CustomerID:     uuid.New().String(),
		CustomerName:   input.CustomerName,
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		Address:        input.Address,
		PayMethods:     append([]string(nil), entity.DefaultPayMethods...),
		Activate:       false,
		LastLogin:      now,
		CreatedAt:      now,
		PasswordExpiry: now.Add(entity.PasswordExpiryHorizon),
		PasswordHash:   hashedPassword,
	}
}
