package middleware

import (
	"log/slog"

	deliverycontext "github.com/JustKota/FrvttaeProyect/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestMiddleware assigns each request an ID and a request-scoped logger
// carrying it, so log lines from the use cases correlate to one request.
type RequestMiddleware struct {
	logger *slog.Logger
}

// NewRequestMiddleware creates a new request scoping middleware.
func NewRequestMiddleware(logger *slog.Logger) *RequestMiddleware {
	return &RequestMiddleware{logger: logger}
}

// Handle resolves the request ID (honoring an inbound X-Request-Id header),
// echoes it back, and threads a scoped logger through the request context.
func (m *RequestMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		scoped := m.logger.With(slog.String("requestID", requestID))

		ctx := c.Request().Context()
		ctx = deliverycontext.WithRequestID(ctx, requestID)
		ctx = deliverycontext.WithLogger(ctx, scoped)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
