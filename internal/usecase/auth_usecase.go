// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account with an
// enrolled face.
type RegisterInput struct {
	Username string
	Email    string
	Password string

	// Image is the raw uploaded face capture.
	Image            []byte
	ImageContentType string
}

// FaceLoginInput defines the data required for a password-plus-face login.
type FaceLoginInput struct {
	Username string
	Password string

	Image            []byte
	ImageContentType string
}

// FederatedLoginInput carries the external provider credential.
type FederatedLoginInput struct {
	Credential string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's basic information.
type RegisterOutput struct {
	ID       string
	Username string
	Role     entity.Role
}

// LoginOutput returns the session token after a successful login.
type LoginOutput struct {
	Username  string
	Role      entity.Role
	Token     string
	ExpiresAt time.Time
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	FaceLogin(ctx context.Context, input *FaceLoginInput) (*LoginOutput, error)
	FederatedLogin(ctx context.Context, input *FederatedLoginInput) (*LoginOutput, error)
}
