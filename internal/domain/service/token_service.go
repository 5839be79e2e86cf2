package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. A token minted for one purpose is rejected when presented
// for another, so a verification link can never double as a session.
const (
	PurposeAccess        = "access"
	PurposeVerify        = "verify"
	PurposePasswordReset = "password_reset"
)

// Claims is the fixed, strongly typed payload carried by every token this
// service issues. The subject is a customer ID for access tokens and an email
// address for verify/reset tokens.
type Claims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating signed,
// time-limited tokens.
type TokenService interface {
	// GenerateAccessToken mints a session token for a customer ID.
	GenerateAccessToken(customerID string) (string, error)

	// GenerateVerifyToken mints an email-verification link token.
	GenerateVerifyToken(email string) (string, error)

	// GeneratePasswordResetToken mints a password-reset link token.
	GeneratePasswordResetToken(email string) (string, error)

	// ValidateToken checks signature, expiry, and purpose, returning the
	// typed claims on success.
	ValidateToken(tokenString string, purpose string) (*Claims, error)

	// AccessTokenDuration returns the configured session token lifetime; the
	// session cookies share it.
	AccessTokenDuration() time.Duration
}

// CSRFService mints and verifies the secondary token that must accompany the
// session cookie on state-changing requests (double-submit pattern).
type CSRFService interface {
	// Generate mints a fresh random CSRF token.
	Generate() (string, error)

	// Verify compares the cookie value against the header echo in constant time.
	Verify(cookieValue, headerValue string) bool
}
