// Package middleware contains the HTTP middleware of the service.
package middleware

import (
	"strings"

	deliverycontext "github.com/JustKota/FrvttaeProyect/internal/delivery/context"
	"github.com/JustKota/FrvttaeProyect/internal/delivery/http/response"
	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
	domainerrors "github.com/JustKota/FrvttaeProyect/internal/domain/errors"
	"github.com/JustKota/FrvttaeProyect/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware provides middleware for session token authentication and
// role-based authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer session token and stores the principal's
// username and role on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, domainerrors.ErrTokenInvalid.ErrorCode(), "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, domainerrors.ErrTokenInvalid.ErrorCode(), "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			var appErr domainerrors.AppError
			if errors.As(err, &appErr) {
				return response.Unauthorized(c, appErr.ErrorCode(), appErr.Message())
			}

			return response.Unauthorized(c, domainerrors.ErrTokenInvalid.ErrorCode(), domainerrors.ErrTokenInvalid.Message())
		}

		c.Set(string(deliverycontext.KeyUsername), claims.Subject)
		c.Set(string(deliverycontext.KeyRole), claims.Role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated
// principal's role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(required entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(string(deliverycontext.KeyRole)).(entity.Role)
			if !ok || role != required {
				return response.Forbidden(c,
					domainerrors.ErrInsufficientRole.ErrorCode(),
					domainerrors.ErrInsufficientRole.Message())
			}

			return next(c)
		}
	}
}
