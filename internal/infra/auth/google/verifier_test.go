package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/JustKota/FrvttaeProyect/config"
	domainerrors "github.com/JustKota/FrvttaeProyect/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "test-client-id.apps.googleusercontent.com"

func newTestVerifier() *verifier {
	cfg := &config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{ClientID: testClientID},
	}

	return NewVerifier(cfg, slog.New(slog.DiscardHandler)).(*verifier)
}

// buildToken assembles an unsigned JWT with the given payload claims. The
// verifier only inspects the payload segment, so the signature is a stub.
func buildToken(t *testing.T, claims idTokenClaims) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))

	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".stub-signature"
}

func validClaims() idTokenClaims {
	return idTokenClaims{
		Iss:           "https://accounts.google.com",
		Sub:           "1234567890",
		Aud:           testClientID,
		Exp:           time.Now().Add(time.Hour).Unix(),
		Iat:           time.Now().Unix(),
		Email:         "alice@example.com",
		EmailVerified: true,
		Name:          "Alice Example",
	}
}

func TestVerifier_ValidToken(t *testing.T) {
	v := newTestVerifier()

	identity, err := v.Verify(context.Background(), buildToken(t, validClaims()))
	assert.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "1234567890", identity.Subject)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.Equal(t, "Alice Example", identity.Name)
	assert.True(t, identity.EmailVerified)
}

func TestVerifier_MalformedToken(t *testing.T) {
	v := newTestVerifier()

	identity, err := v.Verify(context.Background(), "not-a-jwt")
	assert.Error(t, err)
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domainerrors.ErrFederatedTokenInvalid)
}

func TestVerifier_RejectedClaims(t *testing.T) {
	v := newTestVerifier()

	tests := []struct {
		name   string
		mutate func(*idTokenClaims)
	}{
		{
			name:   "wrong issuer",
			mutate: func(c *idTokenClaims) { c.Iss = "https://evil.example.com" },
		},
		{
			name:   "wrong audience",
			mutate: func(c *idTokenClaims) { c.Aud = "another-client-id" },
		},
		{
			name:   "expired",
			mutate: func(c *idTokenClaims) { c.Exp = time.Now().Add(-time.Hour).Unix() },
		},
		{
			name:   "email not verified",
			mutate: func(c *idTokenClaims) { c.EmailVerified = false },
		},
		{
			name:   "missing email",
			mutate: func(c *idTokenClaims) { c.Email = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			tt.mutate(&claims)

			identity, err := v.Verify(context.Background(), buildToken(t, claims))
			assert.Error(t, err)
			assert.Nil(t, identity)
			assert.ErrorIs(t, err, domainerrors.ErrFederatedTokenInvalid)
		})
	}
}

func TestVerifier_BareIssuerAccepted(t *testing.T) {
	v := newTestVerifier()

	claims := validClaims()
	claims.Iss = "accounts.google.com"

	identity, err := v.Verify(context.Background(), buildToken(t, claims))
	assert.NoError(t, err)
	assert.NotNil(t, identity)
}
