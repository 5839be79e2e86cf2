package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"certshop/internal/delivery/http/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserHandler() *UserHandler {
	return NewUserHandler(UserHandlerParams{
		UserUC: &fakeUserUsecase{},
		Logger: newDiscardLogger(),
	})
}

func TestUserHandler_Register_Created(t *testing.T) {
	h := newTestUserHandler()
	c, rec := postJSON(t, "/users", `{
		"customer_name": "王小明",
		"email": "ming@example.com",
		"password": "s3cret-pass"
	}`)

	err := h.Register(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "cust-1")
	assert.NotContains(t, rec.Body.String(), "s3cret-pass")
}

func TestUserHandler_Register_DuplicateEmail(t *testing.T) {
	h := newTestUserHandler()
	c, rec := postJSON(t, "/users", `{
		"customer_name": "王小明",
		"email": "taken@example.com",
		"password": "s3cret-pass"
	}`)

	err := h.Register(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "USER_ALREADY_EXISTS")
}

func TestUserHandler_Register_ShortPassword(t *testing.T) {
	h := newTestUserHandler()
	c, rec := postJSON(t, "/users", `{
		"customer_name": "王小明",
		"email": "ming@example.com",
		"password": "short"
	}`)

	err := h.Register(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Verify(t *testing.T) {
	h := newTestUserHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/verify?token=good-token", nil)
	rec := httptest.NewRecorder()

	err := h.Verify(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserHandler_Verify_MissingToken(t *testing.T) {
	h := newTestUserHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/verify", nil)
	rec := httptest.NewRecorder()

	err := h.Verify(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Verify_BadToken(t *testing.T) {
	h := newTestUserHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/verify?token=bad-token", nil)
	rec := httptest.NewRecorder()

	err := h.Verify(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserHandler_GetProfile(t *testing.T) {
	h := newTestUserHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyCustomerID, "cust-1")

	err := h.GetProfile(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "王小明")
}
