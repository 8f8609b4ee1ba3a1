package handler

import (
	"net/http"
	"time"

	"github.com/JustKota/FrvttaeProyect/internal/delivery/http/response"
	"github.com/JustKota/FrvttaeProyect/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports service and document store health.
type HealthHandler struct {
	uc usecase.DiagnosticsUsecase
}

// NewHealthHandler is the constructor for HealthHandler, injected by Fx.
func NewHealthHandler(uc usecase.DiagnosticsUsecase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

type storeReportResponse struct {
	State          string `json:"state"`
	AttemptCount   int    `json:"attemptCount"`
	LastVerifiedAt string `json:"lastVerifiedAt,omitempty"`
	LastProbeRTTMs int64  `json:"lastProbeRttMs"`
	UserCount      *int64 `json:"userCount,omitempty"`
	LoginLogCount  *int64 `json:"loginLogCount,omitempty"`
}

type healthResponse struct {
	Service string              `json:"service"`
	Status  string              `json:"status"`
	Store   storeReportResponse `json:"store"`
}

// Health renders the diagnostics report. The endpoint itself always answers
// 200; a broken store shows up in the body, not as a failed request.
func (h *HealthHandler) Health(c echo.Context) error {
	report := h.uc.Health(c.Request().Context())

	status := "ok"
	if report.Store.State != "connected" {
		status = "degraded"
	}

	store := storeReportResponse{
		State:          report.Store.State,
		AttemptCount:   report.Store.AttemptCount,
		LastProbeRTTMs: report.Store.LastProbeRTT.Milliseconds(),
		UserCount:      report.Store.UserCount,
		LoginLogCount:  report.Store.LoginLogCount,
	}
	if !report.Store.LastVerifiedAt.IsZero() {
		store.LastVerifiedAt = report.Store.LastVerifiedAt.UTC().Format(time.RFC3339)
	}

	return response.Success(c, http.StatusOK, healthResponse{
		Service: report.Service,
		Status:  status,
		Store:   store,
	}, "Health report")
}
