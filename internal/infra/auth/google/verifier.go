// Package google verifies Google ID tokens for federated login.
package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/JustKota/FrvttaeProyect/config"
	domainerrors "github.com/JustKota/FrvttaeProyect/internal/domain/errors"
	"github.com/JustKota/FrvttaeProyect/internal/domain/service"

	"github.com/pkg/errors"
)

// idTokenClaims represents the claims in a Google ID token.
type idTokenClaims struct {
	Iss           string `json:"iss"`
	Sub           string `json:"sub"`
	Aud           string `json:"aud"`
	Exp           int64  `json:"exp"`
	Iat           int64  `json:"iat"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// verifier implements service.IdentityVerifier for Google ID tokens.
type verifier struct {
	clientID string
	logger   *slog.Logger
}

// NewVerifier is the constructor for the Google identity verifier.
func NewVerifier(cfg *config.Config, logger *slog.Logger) service.IdentityVerifier {
	clientID := ""
	if cfg.GoogleOAuth != nil {
		clientID = cfg.GoogleOAuth.ClientID
	}

	return &verifier{
		clientID: clientID,
		logger:   logger,
	}
}

// Verify decodes a Google ID token, checks its claims, and returns the
// federated identity it asserts. Every rejection path collapses into the
// same typed error so callers never leak the concrete failure to clients.
func (v *verifier) Verify(ctx context.Context, credential string) (*service.FederatedIdentity, error) {
	claims, err := parseIDToken(credential)
	if err != nil {
		v.logger.Warn("Failed to parse federated ID token", slog.Any("error", err))

		return nil, domainerrors.ErrFederatedTokenInvalid.WrapMessage(err.Error())
	}

	if err := v.checkClaims(claims); err != nil {
		v.logger.Warn("Federated ID token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrFederatedTokenInvalid.WrapMessage(err.Error())
	}

	return &service.FederatedIdentity{
		Subject:       claims.Sub,
		Email:         claims.Email,
		Name:          claims.Name,
		EmailVerified: claims.EmailVerified,
	}, nil
}

func (v *verifier) checkClaims(claims *idTokenClaims) error {
	if claims.Iss != "https://accounts.google.com" && claims.Iss != "accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", claims.Iss)
	}

	if claims.Aud != v.clientID {
		return errors.Errorf("invalid audience: expected %s, got %s", v.clientID, claims.Aud)
	}

	now := time.Now().Unix()
	if claims.Exp < now {
		return errors.Errorf("token expired: expired at %d, current time %d", claims.Exp, now)
	}

	if !claims.EmailVerified {
		return errors.New("email not verified")
	}

	if claims.Email == "" {
		return errors.New("token carries no email")
	}

	return nil
}

// parseIDToken splits the JWT and extracts the payload claims.
func parseIDToken(token string) (*idTokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid JWT format")
	}

	decoded, err := base64Decode(parts[1])
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode token payload")
	}

	var claims idTokenClaims
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return nil, errors.Wrap(err, "failed to parse token claims")
	}

	return &claims, nil
}

// base64Decode decodes a base64 URL-safe string.
func base64Decode(str string) ([]byte, error) {
	str = strings.ReplaceAll(str, "-", "+")
	str = strings.ReplaceAll(str, "_", "/")

	if len(str)%4 != 0 {
		str += strings.Repeat("=", 4-len(str)%4)
	}

	decoded, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base64 string")
	}

	return decoded, nil
}
