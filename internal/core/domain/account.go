package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	RoleNormal = "normal"
	RoleAdmin  = "admin"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrEmailExists = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidInput = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")

// Account is the persisted identity record for a registered user.
// PasswordHash never leaves the authentication boundary; every outward
// projection of an Account goes through the mappers in the transport layer.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionClaims is the minimal identity embedded in every issued token.
// A token is the only record of a session; claims are a snapshot taken at
// issue time and stay frozen until the token expires or is re-issued.
type SessionClaims struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// ValidRole reports whether r is one of the known account roles.
func ValidRole(r string) bool {
	return r == RoleNormal || r == RoleAdmin
}

// InvalidInput returns an ErrInvalidInput carrying a field-specific reason.
func InvalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}
