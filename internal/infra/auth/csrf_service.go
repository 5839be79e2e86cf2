package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"certshop/internal/domain/service"
	"certshop/internal/errors"
)

// csrfTokenBytes is the entropy of a minted CSRF token before encoding.
const csrfTokenBytes = 32

// csrfService implements the double-submit CSRF check: a random token set as
// a readable cookie at login must be echoed back in a request header.
type csrfService struct{}

// NewCSRFService is the constructor for csrfService.
func NewCSRFService() service.CSRFService {
	return &csrfService{}
}

// Generate mints a fresh URL-safe random token.
func (s *csrfService) Generate() (string, error) {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes for csrf token")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify compares cookie and header values in constant time. Empty values
// never match, even against each other.
func (s *csrfService) Verify(cookieValue, headerValue string) bool {
	if cookieValue == "" || headerValue == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(cookieValue), []byte(headerValue)) == 1
}
