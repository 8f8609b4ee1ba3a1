package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JustKota/FrvttaeProyect/internal/delivery/http/response"
	domainerrors "github.com/JustKota/FrvttaeProyect/internal/domain/errors"
	"github.com/JustKota/FrvttaeProyect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// defaultLogLimit bounds an unqualified audit listing.
const defaultLogLimit = 100

// AdminHandler holds dependencies for the administrator-only handlers.
type AdminHandler struct {
	uc usecase.AdminUsecase
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// loginRecordResponse is the public view of one audit entry.
type loginRecordResponse struct {
	Username  string `json:"username"`
	Method    string `json:"method"`
	Timestamp string `json:"timestamp"`
}

// ListLoginRecords returns the most recent login audit entries.
func (h *AdminHandler) ListLoginRecords(c echo.Context) error {
	limit := int64(defaultLogLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("limit must be a non-negative integer"))
		}
		limit = parsed
	}

	records, err := h.uc.ListLoginRecords(c.Request().Context(), limit)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]loginRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, loginRecordResponse{
			Username:  rec.Username,
			Method:    rec.Method,
			Timestamp: rec.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	return response.Success(c, http.StatusOK, out, "Login records retrieved")
}

// DeleteUser removes an account by username.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("username is required"))
	}

	if err := h.uc.DeleteUser(c.Request().Context(), username); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"username": username}, "User deleted")
}
