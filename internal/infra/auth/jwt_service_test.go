package auth

import (
	"testing"
	"time"

	"certshop/config"
	"certshop/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL: time.Hour,
			VerifyTokenTTL: 24 * time.Hour,
			ResetTokenTTL:  time.Hour,
		},
	}
	cfg.SecretKey.Access = "test_secret_key_very_long_for_testing"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestJWTService_GenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.GenerateAccessToken("customer-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token, service.PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, "customer-123", claims.Subject)
	assert.Equal(t, service.PurposeAccess, claims.Purpose)
}

func TestJWTService_PurposeMismatch(t *testing.T) {
	svc := newTestTokenService(t)

	// A verification link token must never pass as a session token.
	token, err := svc.GenerateVerifyToken("user@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token, service.PurposeAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = svc.ValidateToken(token, service.PurposeVerify)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Subject)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL: 0, // expires immediately
			VerifyTokenTTL: time.Hour,
			ResetTokenTTL:  time.Hour,
		},
	}
	cfg.SecretKey.Access = "test_secret_key_very_long_for_testing"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("customer-123")
	require.NoError(t, err)

	// A zero-TTL token is already expired by the time it is checked.
	time.Sleep(10 * time.Millisecond)
	claims, err := svc.ValidateToken(token, service.PurposeAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := newTestTokenService(t)

	claims, err := svc.ValidateToken("clearly-not-a-jwt-token-format", service.PurposeAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.GenerateAccessToken("customer-123")
	require.NoError(t, err)

	otherCfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL: time.Hour,
			VerifyTokenTTL: time.Hour,
			ResetTokenTTL:  time.Hour,
		},
	}
	otherCfg.SecretKey.Access = "a_completely_different_secret_key"

	otherSvc, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	claims, err := otherSvc.ValidateToken(token, service.PurposeAccess)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{}}

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
}
