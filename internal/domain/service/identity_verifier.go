package service

import "context"

// FederatedIdentity is the verified result of an external credential check.
type FederatedIdentity struct {
	Subject       string // Provider-specific stable user id (e.g., Google's 'sub' claim).
	Email         string // Verified email address used to key the local record.
	Name          string // Display name, when the provider supplies one.
	EmailVerified bool
}

// IdentityVerifier verifies an opaque external credential and returns the
// identity it attests. The third-party handshake beyond this boundary is an
// external collaborator.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (*FederatedIdentity, error)
}
