package impl

import (
	"context"
	"testing"
	"time"

	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
	domainerrors "github.com/JustKota/FrvttaeProyect/internal/domain/errors"
	"github.com/JustKota/FrvttaeProyect/internal/domain/repository"
	"github.com/JustKota/FrvttaeProyect/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAdminService(t *testing.T) (usecase.AdminUsecase, *mockUserRepo, *mockAuditRepo) {
	t.Helper()

	userRepo := &mockUserRepo{}
	auditRepo := &mockAuditRepo{}

	service := NewAdminService(AdminServiceParams{
		UserRepo:  userRepo,
		AuditRepo: auditRepo,
		Logger:    newDiscardLogger(),
	})

	return service, userRepo, auditRepo
}

func TestAdminService_ListLoginRecords(t *testing.T) {
	service, _, auditRepo := createTestAdminService(t)
	ctx := context.Background()

	now := time.Now()
	auditRepo.On("List", ctx, int64(10)).Return([]*entity.AuditLogEntry{
		{Username: "bob", Method: entity.MethodFederated, Timestamp: now},
		{Username: "alice", Method: entity.MethodPasswordAndFace, Timestamp: now.Add(-time.Minute)},
	}, nil)

	records, err := service.ListLoginRecords(ctx, 10)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "bob", records[0].Username)
	assert.Equal(t, "federated", records[0].Method)
	assert.Equal(t, "password_and_face", records[1].Method)
}

func TestAdminService_ListLoginRecords_StoreUnavailable(t *testing.T) {
	service, _, auditRepo := createTestAdminService(t)
	ctx := context.Background()

	auditRepo.On("List", ctx, int64(0)).
		Return(nil, errors.Wrap(repository.ErrStoreUnavailable, "no reachable servers"))

	records, err := service.ListLoginRecords(ctx, 0)

	assert.Nil(t, records)
	assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)
}

func TestAdminService_DeleteUser(t *testing.T) {
	service, userRepo, _ := createTestAdminService(t)
	ctx := context.Background()

	userRepo.On("Delete", ctx, "alice").Return(nil)

	assert.NoError(t, service.DeleteUser(ctx, "alice"))
}

func TestAdminService_DeleteUser_NotFound(t *testing.T) {
	service, userRepo, _ := createTestAdminService(t)
	ctx := context.Background()

	userRepo.On("Delete", ctx, "ghost").Return(repository.ErrUserNotFound)

	err := service.DeleteUser(ctx, "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
