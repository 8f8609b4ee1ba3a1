package impl

import (
	"context"
	"log/slog"

	"github.com/JustKota/FrvttaeProyect/config"
	deliverycontext "github.com/JustKota/FrvttaeProyect/internal/delivery/context"
	"github.com/JustKota/FrvttaeProyect/internal/domain/repository"
	"github.com/JustKota/FrvttaeProyect/internal/domain/service"
	"github.com/JustKota/FrvttaeProyect/internal/usecase"

	"go.uber.org/fx"
)

// stateConnected mirrors the connection manager's connected state string.
const stateConnected = "connected"

// diagnosticsService implements the DiagnosticsUsecase interface. It only
// observes; it never triggers connects or probes.
type diagnosticsService struct {
	monitor     service.StoreMonitor
	userRepo    repository.UserRepository
	auditRepo   repository.AuditLogRepository
	serviceName string
	logger      *slog.Logger
}

// DiagnosticsServiceParams holds dependencies for diagnosticsService,
// injected by Fx.
type DiagnosticsServiceParams struct {
	fx.In

	Monitor   service.StoreMonitor
	UserRepo  repository.UserRepository
	AuditRepo repository.AuditLogRepository
	Config    *config.Config
	Logger    *slog.Logger
}

// NewDiagnosticsService is the constructor for diagnosticsService.
func NewDiagnosticsService(params DiagnosticsServiceParams) usecase.DiagnosticsUsecase {
	return &diagnosticsService{
		monitor:     params.Monitor,
		userRepo:    params.UserRepo,
		auditRepo:   params.AuditRepo,
		serviceName: params.Config.Env.ServiceName,
		logger:      params.Logger,
	}
}

func (srv *diagnosticsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Health reports the store connection state plus collection counts when the
// store is reachable. Count failures degrade the report instead of failing it.
func (srv *diagnosticsService) Health(ctx context.Context) *usecase.HealthReport {
	status := srv.monitor.Status()

	report := &usecase.HealthReport{
		Service: srv.serviceName,
		Store: usecase.StoreReport{
			State:          status.State,
			AttemptCount:   status.AttemptCount,
			LastVerifiedAt: status.LastVerifiedAt,
			LastProbeRTT:   status.LastProbeRTT,
		},
	}

	if status.State != stateConnected {
		return report
	}

	if n, err := srv.userRepo.Count(ctx); err != nil {
		srv.log(ctx).Warn("Failed to count users for health report", slog.Any("error", err))
	} else {
		report.Store.UserCount = &n
	}

	if n, err := srv.auditRepo.Count(ctx); err != nil {
		srv.log(ctx).Warn("Failed to count login logs for health report", slog.Any("error", err))
	} else {
		report.Store.LoginLogCount = &n
	}

	return report
}
