package impl

import (
	"context"
	"log/slog"

	deliverycontext "github.com/JustKota/FrvttaeProyect/internal/delivery/context"
	domainerrors "github.com/JustKota/FrvttaeProyect/internal/domain/errors"
	"github.com/JustKota/FrvttaeProyect/internal/domain/repository"
	"github.com/JustKota/FrvttaeProyect/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
	logger    *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	AuditRepo repository.AuditLogRepository
	Logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		userRepo:  params.UserRepo,
		auditRepo: params.AuditRepo,
		logger:    params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListLoginRecords returns the most recent audit entries, newest first.
func (srv *adminService) ListLoginRecords(ctx context.Context, limit int64) ([]usecase.LoginRecord, error) {
	entries, err := srv.auditRepo.List(ctx, limit)
	if err != nil {
		if errors.Is(err, repository.ErrStoreUnavailable) {
			return nil, domainerrors.ErrStoreUnavailable.WrapMessage("failed to list login records")
		}

		srv.log(ctx).Error("Failed to list login records", slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("failed to list login records")
	}

	records := make([]usecase.LoginRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, usecase.LoginRecord{
			Username:  entry.Username,
			Method:    string(entry.Method),
			Timestamp: entry.Timestamp,
		})
	}

	return records, nil
}

// DeleteUser removes an account by username.
func (srv *adminService) DeleteUser(ctx context.Context, username string) error {
	if err := srv.userRepo.Delete(ctx, username); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return errors.WithStack(domainerrors.ErrUserNotFound)
		case errors.Is(err, repository.ErrStoreUnavailable):
			return domainerrors.ErrStoreUnavailable.WrapMessage("failed to delete user")
		}

		srv.log(ctx).Error("Failed to delete user",
			slog.String("username", username),
			slog.Any("error", err))

		return domainerrors.ErrInternal.WrapMessage("failed to delete user")
	}

	srv.log(ctx).Info("Deleted user account", slog.String("username", username))

	return nil
}
