// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"certshop/config"
	"certshop/internal/domain/service"
	"certshop/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    string        // Secret key for signing all tokens.
	accessTTL time.Duration // Time-to-live for session tokens.
	verifyTTL time.Duration // Time-to-live for email-verification link tokens.
	resetTTL  time.Duration // Time-to-live for password-reset link tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret:    cfg.SecretKey.Access,
		accessTTL: cfg.Auth.AccessTokenTTL,
		verifyTTL: cfg.Auth.VerifyTokenTTL,
		resetTTL:  cfg.Auth.ResetTokenTTL,
	}, nil
}

// GenerateAccessToken mints a session token carrying the customer ID.
func (s *jwtService) GenerateAccessToken(customerID string) (string, error) {
	return s.generateToken(customerID, service.PurposeAccess, s.accessTTL)
}

// GenerateVerifyToken mints an email-verification link token.
func (s *jwtService) GenerateVerifyToken(email string) (string, error) {
	return s.generateToken(email, service.PurposeVerify, s.verifyTTL)
}

// GeneratePasswordResetToken mints a password-reset link token.
func (s *jwtService) GeneratePasswordResetToken(email string) (string, error) {
	return s.generateToken(email, service.PurposePasswordReset, s.resetTTL)
}

// ValidateToken checks signature, expiry, and purpose.
func (s *jwtService) ValidateToken(tokenString string, purpose string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.Purpose != purpose {
		return nil, errors.Errorf("unexpected token purpose %q", claims.Purpose)
	}

	return claims, nil
}

// AccessTokenDuration returns the configured session token lifetime.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// generateToken is a private helper to create a JWT with the typed claims.
func (s *jwtService) generateToken(subject, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := service.Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}
