package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/JustKota/FrvttaeProyect/config"
	"github.com/JustKota/FrvttaeProyect/internal/delivery"
	"github.com/JustKota/FrvttaeProyect/internal/delivery/http"
	"github.com/JustKota/FrvttaeProyect/internal/delivery/http/middleware"
	"github.com/JustKota/FrvttaeProyect/internal/delivery/http/router/handler"
	"github.com/JustKota/FrvttaeProyect/internal/infra/auth"
	"github.com/JustKota/FrvttaeProyect/internal/infra/auth/google"
	"github.com/JustKota/FrvttaeProyect/internal/infra/face"
	logs "github.com/JustKota/FrvttaeProyect/internal/infra/log"
	"github.com/JustKota/FrvttaeProyect/internal/infra/persistence/mongo"
	"github.com/JustKota/FrvttaeProyect/internal/infra/vision"
	"github.com/JustKota/FrvttaeProyect/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		mongo.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			mongo.NewUserRepository,
			mongo.NewAuditLogRepository,
			mongo.NewStoreMonitor,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			google.NewVerifier,
			vision.NewAdmitter,
			face.NewHTTPEncoder,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewAdminService,
			impl.NewDiagnosticsService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewAdminHandler,
			handler.NewHealthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
