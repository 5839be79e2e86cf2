package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"certshop/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokenService struct{}

func (stubTokenService) GenerateAccessToken(customerID string) (string, error) {
	return "access:" + customerID, nil
}

func (stubTokenService) GenerateVerifyToken(email string) (string, error) {
	return "verify:" + email, nil
}

func (stubTokenService) GeneratePasswordResetToken(email string) (string, error) {
	return "reset:" + email, nil
}

func (stubTokenService) ValidateToken(tokenString string, purpose string) (*service.Claims, error) {
	if purpose != service.PurposeAccess || tokenString != "access:cust-1" {
		return nil, errors.New("invalid token")
	}

	claims := &service.Claims{Purpose: purpose}
	claims.Subject = "cust-1"

	return claims, nil
}

func (stubTokenService) AccessTokenDuration() time.Duration { return time.Hour }

type stubCSRFService struct{}

func (stubCSRFService) Generate() (string, error) { return "csrf-value", nil }

func (stubCSRFService) Verify(cookieValue, headerValue string) bool {
	return cookieValue != "" && cookieValue == headerValue
}

func newAuthTestContext(t *testing.T, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthMiddleware_Authenticate_MissingCookie(t *testing.T) {
	m := NewAuthMiddleware(stubTokenService{}, stubCSRFService{})
	c, rec := newAuthTestContext(t)

	err := m.Authenticate(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_InvalidToken(t *testing.T) {
	m := NewAuthMiddleware(stubTokenService{}, stubCSRFService{})
	c, rec := newAuthTestContext(t, &http.Cookie{Name: CookieAccessToken, Value: "access:someone-else"})

	err := m.Authenticate(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_SetsCustomerID(t *testing.T) {
	m := NewAuthMiddleware(stubTokenService{}, stubCSRFService{})
	c, rec := newAuthTestContext(t, &http.Cookie{Name: CookieAccessToken, Value: "access:cust-1"})

	var seenCustomerID string
	next := func(c echo.Context) error {
		seenCustomerID = CustomerID(c)

		return c.NoContent(http.StatusOK)
	}

	err := m.Authenticate(next)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cust-1", seenCustomerID)
}

func TestAuthMiddleware_RequireCSRF_MissingCookie(t *testing.T) {
	m := NewAuthMiddleware(stubTokenService{}, stubCSRFService{})
	c, rec := newAuthTestContext(t)

	err := m.RequireCSRF(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthMiddleware_RequireCSRF_HeaderMismatch(t *testing.T) {
	m := NewAuthMiddleware(stubTokenService{}, stubCSRFService{})
	c, rec := newAuthTestContext(t, &http.Cookie{Name: CookieCSRFToken, Value: "csrf-value"})
	c.Request().Header.Set(HeaderCSRFToken, "another-value")

	err := m.RequireCSRF(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthMiddleware_RequireCSRF_Match(t *testing.T) {
	m := NewAuthMiddleware(stubTokenService{}, stubCSRFService{})
	c, rec := newAuthTestContext(t, &http.Cookie{Name: CookieCSRFToken, Value: "csrf-value"})
	c.Request().Header.Set(HeaderCSRFToken, "csrf-value")

	err := m.RequireCSRF(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
