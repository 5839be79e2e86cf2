// Package handler contains the echo handlers of the HTTP API.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"certshop/internal/delivery/http/middleware"
	"certshop/internal/delivery/http/response"
	"certshop/internal/domain/entity"
	"certshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for account-related handlers
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// RegisterRequest represents the request body for registering an account
type RegisterRequest struct {
	CustomerName string `json:"customer_name" validate:"required,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty,max=30"`
	Address      string `json:"address" validate:"omitempty,max=500"`
}

// AccountView is the public shape of an account; it never carries the
// password hash.
type AccountView struct {
	CustomerID     string    `json:"customer_id"`
	CustomerName   string    `json:"customer_name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number"`
	Address        string    `json:"address"`
	PayMethods     []string  `json:"pay_methods"`
	Activate       bool      `json:"activate"`
	LastLogin      time.Time `json:"last_login"`
	CreatedAt      time.Time `json:"created_at"`
	PasswordExpiry time.Time `json:"password_expiry"`
}

// NewAccountView converts an account entity into its public shape.
func NewAccountView(account *entity.Account) *AccountView {
	if account == nil {
		return nil
	}

	return &AccountView{
		CustomerID:     account.CustomerID,
		CustomerName:   account.CustomerName,
		Email:          account.Email,
		PhoneNumber:    account.PhoneNumber,
		Address:        account.Address,
		PayMethods:     account.PayMethods,
		Activate:       account.Activate,
		LastLogin:      account.LastLogin,
		CreatedAt:      account.CreatedAt,
		PasswordExpiry: account.PasswordExpiry,
	}
}

// Register handles new account registration
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "註冊資料格式錯誤")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.userUC.Register(c.Request().Context(), &usecase.RegisterInput{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Password:     req.Password,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, NewAccountView(output.Account), "註冊成功, 請至信箱收取驗證信")
}

// Verify handles the activation link from the verification mail (link-token mode).
func (h *UserHandler) Verify(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.BadRequest(c, "MISSING_TOKEN", "缺少驗證權杖")
	}

	if err := h.userUC.VerifyAccount(c.Request().Context(), token); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "帳號已啟用")
}

// GetProfile returns the logged-in customer's account.
func (h *UserHandler) GetProfile(c echo.Context) error {
	account, err := h.userUC.GetProfile(c.Request().Context(), middleware.CustomerID(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, NewAccountView(account), "")
}
