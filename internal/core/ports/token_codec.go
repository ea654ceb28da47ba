package ports

import "github.com/identware/account-api/internal/core/domain"

// TokenCodec signs session claims into an opaque bearer string and back.
// Payload returns an error on any verification failure (bad signature,
// malformed token, expiry); callers treat all failures alike.
type TokenCodec interface {
	CreateToken(claims domain.SessionClaims) (string, error)
	Payload(token string) (*domain.SessionClaims, error)
}
