package handler

import (
	"log/slog"
	"net/http"
	"time"

	"certshop/config"
	"certshop/internal/delivery/http/middleware"
	"certshop/internal/delivery/http/response"
	"certshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LoginHandlerParams holds dependencies for LoginHandler, injected by Fx.
type LoginHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Config *config.Config
	Logger *slog.Logger
}

// LoginHandler holds dependencies for session and password handlers
type LoginHandler struct {
	userUC usecase.UserUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewLoginHandler is the constructor for LoginHandler
func NewLoginHandler(params LoginHandlerParams) *LoginHandler {
	return &LoginHandler{
		userUC: params.UserUC,
		cfg:    params.Config,
		logger: params.Logger,
	}
}

// LoginRequest represents the form-encoded credential pair. The username
// field carries the email address.
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// ChangePasswordRequest represents the request body for an in-session
// password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// RecoverPasswordRequest represents the request body for a recovery mail.
type RecoverPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordForgotRequest represents the request body for a link-token
// password reset.
type ResetPasswordForgotRequest struct {
	Token       string `json:"token" validate:"required"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// LoginResponse carries the CSRF token the client must echo in the
// X-CSRF-Token header on state-changing requests.
type LoginResponse struct {
	CSRFToken string       `json:"csrf_token"`
	Account   *AccountView `json:"account"`
}

// Login handles credential login and establishes the cookie session.
func (h *LoginHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "登入資料格式錯誤")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.userUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Username,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.setSessionCookies(c, output.AccessToken, output.CSRFToken)

	return response.Success(c, http.StatusOK, LoginResponse{
		CSRFToken: output.CSRFToken,
		Account:   NewAccountView(output.Account),
	}, "登入成功")
}

// Logout clears the session cookies.
func (h *LoginHandler) Logout(c echo.Context) error {
	h.clearSessionCookies(c)

	return response.Success(c, http.StatusOK, nil, "登出成功")
}

// ChangePassword handles an in-session password change.
func (h *LoginHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "密碼資料格式錯誤")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	err := h.userUC.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		CustomerID:  middleware.CustomerID(c),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "密碼已更新")
}

// RecoverPassword mails a reset link to the given address.
func (h *LoginHandler) RecoverPassword(c echo.Context) error {
	var req RecoverPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "資料格式錯誤")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.userUC.RecoverPassword(c.Request().Context(), req.Email); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "重設密碼信已寄出")
}

// ResetPasswordForgot resets the password with a link token (link-token mode).
func (h *LoginHandler) ResetPasswordForgot(c echo.Context) error {
	var req ResetPasswordForgotRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "資料格式錯誤")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	err := h.userUC.ResetForgottenPassword(c.Request().Context(), &usecase.ResetForgottenPasswordInput{
		Token:       req.Token,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "密碼已重設")
}

// setSessionCookies installs the HttpOnly access token cookie and the
// readable CSRF cookie, both sharing the access token lifetime.
func (h *LoginHandler) setSessionCookies(c echo.Context, accessToken, csrfToken string) {
	ttl := h.accessTokenTTL()
	secure := h.cookieSecure()

	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieAccessToken,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})

	// The CSRF cookie stays readable so the frontend can echo it in the header.
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieCSRFToken,
		Value:    csrfToken,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: false,
		Secure:   secure,
		SameSite: sameSite,
	})
}

func (h *LoginHandler) clearSessionCookies(c echo.Context) {
	secure := h.cookieSecure()

	for _, name := range []string{middleware.CookieAccessToken, middleware.CookieCSRFToken} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == middleware.CookieAccessToken,
			Secure:   secure,
		})
	}
}

func (h *LoginHandler) accessTokenTTL() time.Duration {
	if h.cfg != nil && h.cfg.Auth != nil && h.cfg.Auth.AccessTokenTTL > 0 {
		return h.cfg.Auth.AccessTokenTTL
	}

	return time.Hour
}

func (h *LoginHandler) cookieSecure() bool {
	return h.cfg != nil && h.cfg.Auth != nil && h.cfg.Auth.CookieSecure
}
