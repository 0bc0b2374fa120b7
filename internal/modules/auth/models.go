// Package auth manages user accounts, password hashing, JWT issuance and
// the tenant-isolation middleware. A user account doubles as the tenant: all
// financial data is keyed by the user's UUID.
package auth

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for a failed login. Deliberately
	// indistinguishable between unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is one registered account.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	CompanyName      string    `json:"companyName"`
	IndustryCategory string    `json:"industryCategory"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
