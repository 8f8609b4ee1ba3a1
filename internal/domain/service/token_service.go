package service

import (
	"time"

	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
)

// Claims is the signed payload representing an authenticated session.
// It is ephemeral and never persisted.
type Claims struct {
	Subject   string
	Role      entity.Role
	ExpiresAt time.Time
}

// TokenService issues and verifies role-scoped session tokens.
type TokenService interface {
	// Issue signs a claims set for the subject and returns the opaque bearer
	// token together with its expiry.
	Issue(subject string, role entity.Role) (token string, expiresAt time.Time, err error)

	// Verify decodes and validates a token. Expired tokens and structurally
	// or cryptographically invalid tokens fail with distinct typed errors.
	Verify(token string) (*Claims, error)
}
