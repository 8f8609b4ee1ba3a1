package mongo

import (
	"context"
	"log/slog"

	"github.com/JustKota/FrvttaeProyect/config"
	"github.com/JustKota/FrvttaeProyect/internal/domain/lifecycle"
	"github.com/JustKota/FrvttaeProyect/internal/domain/service"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the document store connection manager and wires its lifecycle.
// Startup is fail-open: an unreachable store is logged and retried lazily on
// first real use, so the process always comes up.
func New(params Params) *ConnectionManager {
	cm := NewConnectionManager(NewDialer(params.Config), Options{
		MaxRetries:          params.Config.Mongo.MaxRetries,
		RetryDelay:          params.Config.Mongo.RetryDelay,
		ConnectTimeout:      params.Config.Mongo.ConnectTimeout,
		HealthCheckInterval: params.Config.Mongo.HealthCheckInterval,
	}, params.Logger)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := cm.Connect(ctx); err != nil {
				params.Logger.Warn("Document store unreachable at startup, retrying lazily on first use",
					slog.Any("error", err))

				return nil
			}

			if err := EnsureIndexes(ctx, cm); err != nil {
				params.Logger.Warn("Failed to ensure document store indexes", slog.Any("error", err))
			}

			return nil
		},
		OnStop: cm.Close,
	})

	return cm
}

// storeMonitor adapts the connection manager's diagnostics view to the
// domain boundary consumed by the health endpoint.
type storeMonitor struct {
	cm *ConnectionManager
}

// NewStoreMonitor exposes the connection manager as a read-only StoreMonitor.
func NewStoreMonitor(cm *ConnectionManager) service.StoreMonitor {
	return &storeMonitor{cm: cm}
}

func (m *storeMonitor) Status() service.StoreStatus {
	snap := m.cm.Snapshot()

	return service.StoreStatus{
		State:          string(snap.Status),
		AttemptCount:   snap.AttemptCount,
		LastVerifiedAt: snap.LastVerifiedAt,
		LastProbeRTT:   snap.LastProbeRTT,
	}
}
