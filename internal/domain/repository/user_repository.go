// Package repository defines the persistence boundaries of the domain.
// Implementations live in the infrastructure layer; the use cases depend
// only on these interfaces.
package repository

import (
	"context"

	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
	"github.com/JustKota/FrvttaeProyect/internal/errors"
)

// Sentinel errors returned by repositories. Store-unavailable is distinct
// from not-found: the former is retryable, the latter is a final answer.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrStoreUnavailable = errors.New("document store unavailable")
)

// UserRepository is the typed repository over the users collection.
type UserRepository interface {
	// FindByUsername retrieves one user record by its unique username.
	// Returns ErrUserNotFound when no record exists.
	FindByUsername(ctx context.Context, username string) (*entity.UserRecord, error)

	// Insert persists a new record and returns its assigned id. A username
	// collision surfaces as ErrUsernameTaken, enforced by the storage layer's
	// unique index rather than only by the application-level existence check.
	Insert(ctx context.Context, rec *entity.UserRecord) (string, error)

	// Update applies a partial update to the record with the given username.
	Update(ctx context.Context, username string, fields entity.UserUpdate) error

	// SetRole persists the role for a record. Used by the one-time role
	// normalization of legacy records; writing the same value twice is harmless.
	SetRole(ctx context.Context, username string, role entity.Role) error

	// Delete removes the record with the given username.
	Delete(ctx context.Context, username string) error

	// Count returns the number of stored user records.
	Count(ctx context.Context) (int64, error)
}
