package middleware

import (
	"certshop/internal/delivery/http/response"
	"certshop/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Session-cookie mode names. The access token travels in an HttpOnly cookie;
// the CSRF token is double-submitted as a readable cookie plus a header.
const (
	CookieAccessToken = "access_token"
	CookieCSRFToken   = "csrf_token"
	HeaderCSRFToken   = "X-CSRF-Token"

	// ContextKeyCustomerID is where Authenticate stores the session's customer ID.
	ContextKeyCustomerID = "customerID"
)

// AuthMiddleware provides middleware for cookie-session authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	csrfSvc  service.CSRFService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, csrfSvc service.CSRFService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, csrfSvc: csrfSvc}
}

// Authenticate validates the access token cookie and stores the customer ID
// on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(CookieAccessToken)
		if err != nil || cookie.Value == "" {
			return response.Unauthorized(c, "MISSING_SESSION", "請先登入")
		}

		claims, err := m.tokenSvc.ValidateToken(cookie.Value, service.PurposeAccess)
		if err != nil {
			return response.Unauthorized(c, "INVALID_SESSION", "登入已失效, 請重新登入")
		}

		c.Set(ContextKeyCustomerID, claims.Subject)

		return next(c)
	}
}

// RequireCSRF enforces the double-submit check on state-changing requests.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireCSRF(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(CookieCSRFToken)
		if err != nil || cookie.Value == "" {
			return response.Forbidden(c, "INVALID_CSRF_TOKEN", "CSRF 權杖驗證失敗")
		}

		if !m.csrfSvc.Verify(cookie.Value, c.Request().Header.Get(HeaderCSRFToken)) {
			return response.Forbidden(c, "INVALID_CSRF_TOKEN", "CSRF 權杖驗證失敗")
		}

		return next(c)
	}
}

// CustomerID reads the authenticated customer ID set by Authenticate.
func CustomerID(c echo.Context) string {
	customerID, _ := c.Get(ContextKeyCustomerID).(string)

	return customerID
}
