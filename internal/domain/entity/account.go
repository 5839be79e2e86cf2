// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// DefaultPayMethods is assigned to every account at registration time.
var DefaultPayMethods = []string{"credit_card", "line_pay"}

// PasswordExpiryHorizon is how far in the future a fresh password expires.
const PasswordExpiryHorizon = 365 * 24 * time.Hour

// Account represents a registered customer. Accounts start inactive and are
// switched on by the email-verification callback; they are never physically
// deleted.
type Account struct {
	CustomerID         string    // UUID string, assigned at registration.
	CustomerName       string    // Display name, unique across all accounts.
	Email              string    // Login identifier, unique across all accounts.
	PhoneNumber        string    // Contact phone, free-form.
	Address            string    // Shipping/billing address, free-form.
	PayMethods         []string  // Accepted payment method tags.
	Activate           bool      // False until the verification link is clicked.
	LastLogin          time.Time // Stamped on every successful login.
	CreatedAt          time.Time
	PasswordExpiry     time.Time // Date the current password expires (creation + one year).
	PasswordResetCount int       // Bumped each time the password is changed.
	PasswordHash       string    // bcrypt digest, never exposed outside the service layer.
}
