// Package auth provides concrete implementations for authentication-related
// domain services.
package auth

import (
	"time"

	"github.com/JustKota/FrvttaeProyect/config"
	domainerrors "github.com/JustKota/FrvttaeProyect/internal/domain/errors"
	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
	"github.com/JustKota/FrvttaeProyect/internal/domain/service"
	"github.com/JustKota/FrvttaeProyect/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims is the JWT payload for a session token.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using
// the JWT standard with HMAC signing.
type jwtService struct {
	secret []byte        // Signing key, process configuration, never request data.
	ttl    time.Duration // Session token time-to-live.
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    cfg.Token.TTL,
	}, nil
}

// Issue signs a claims set for the subject with the configured expiry.
func (s *jwtService) Issue(subject string, role entity.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := sessionClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign session token")
	}

	return token, expiresAt, nil
}

// Verify decodes and validates a token string. Expiry and structural or
// signature failures map to distinct typed errors.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired.WrapMessage("session token expired")
		}

		return nil, domainerrors.ErrTokenInvalid.WrapMessage(err.Error())
	}
	if !token.Valid {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("session token failed validation")
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &service.Claims{
		Subject:   claims.Subject,
		Role:      entity.Role(claims.Role),
		ExpiresAt: expiresAt,
	}, nil
}
