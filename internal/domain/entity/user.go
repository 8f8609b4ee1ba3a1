// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
	"unicode/utf8"
)

// UserRecord is the core entity of the system, representing one principal
// that can authenticate against the service.
type UserRecord struct {
	ID            string        // Hex identifier assigned by the document store.
	Username      string        // Unique login identifier, 3-50 characters.
	Email         string        // Optional contact/display email, never used for lookup.
	PasswordHash  string        // bcrypt hash of the account password. Empty for federated principals.
	Role          Role          // The user's role. Zero value on legacy records that predate roles.
	Kind          PrincipalKind // How this principal authenticates (password+face vs federated identity).
	FaceEmbedding Embedding     // 128-component biometric embedding captured at registration. Nil means not enrolled.
	FaceImage     []byte        // Source image bytes retained for audit/debug. Not used in comparison.
	FederatedID   string        // Subject identifier from the external identity provider, when Kind is federated.
	CreatedAt     time.Time     // Timestamp of when this account was created.
}

// Enrolled reports whether the record carries a biometric embedding usable
// for face login.
func (u *UserRecord) Enrolled() bool {
	return len(u.FaceEmbedding) > 0
}

const (
	// UsernameMinLen is the minimum accepted username length.
	UsernameMinLen = 3
	// UsernameMaxLen is the maximum accepted username length.
	UsernameMaxLen = 50
)

// ValidUsername checks the structural constraints on a username. The bounds
// count characters, not bytes, so multibyte names are measured fairly.
func ValidUsername(name string) bool {
	runes := utf8.RuneCountInString(name)

	return runes >= UsernameMinLen && runes <= UsernameMaxLen
}

// UserUpdate describes a partial update to a stored user record.
// Nil fields are left untouched.
type UserUpdate struct {
	Email *string
	Role  *Role
}
