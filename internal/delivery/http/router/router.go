// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"certshop/internal/delivery/http/middleware"
	"certshop/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	LoginHandler   *handler.LoginHandler
	CartHandler    *handler.CartHandler
	CatalogHandler *handler.CatalogHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	loginHandler   *handler.LoginHandler
	cartHandler    *handler.CartHandler
	catalogHandler *handler.CatalogHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		loginHandler:   params.LoginHandler,
		cartHandler:    params.CartHandler,
		catalogHandler: params.CatalogHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public account routes (link-token mode for the verify endpoint)
	e.POST("/users", r.userHandler.Register)
	e.GET("/users/verify", r.userHandler.Verify)

	// Public login routes
	loginGroup := e.Group("/login")
	{
		loginGroup.POST("/access-token", r.loginHandler.Login)
		loginGroup.POST("/password-recovery", r.loginHandler.RecoverPassword)
		loginGroup.POST("/reset-password-forgot", r.loginHandler.ResetPasswordForgot)
	}

	e.POST("/logout", r.loginHandler.Logout)

	// Public catalog routes
	e.GET("/production", r.catalogHandler.ListProducts)
	e.GET("/production/:licenseId", r.catalogHandler.GetProduct)

	// Session-cookie mode routes. State-changing routes additionally pass the
	// CSRF double-submit check.
	authenticated := r.authMiddleware.Authenticate
	csrf := r.authMiddleware.RequireCSRF

	e.GET("/users/me", r.userHandler.GetProfile, authenticated)
	e.POST("/login/reset-password", r.loginHandler.ChangePassword, authenticated, csrf)

	cartGroup := e.Group("/cart", authenticated)
	{
		cartGroup.POST("/add", r.cartHandler.AddItem, csrf)
		cartGroup.GET("/:customerId", r.cartHandler.ViewCart)
		cartGroup.POST("/:customerId/checkout", r.cartHandler.Checkout, csrf)
		cartGroup.DELETE("/:customerId/item/:itemId", r.cartHandler.RemoveItem, csrf)
	}
}
