package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/JustKota/FrvttaeProyect/config"
	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
	"github.com/JustKota/FrvttaeProyect/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth:  &config.AuthConfig{LoginDeadline: 5 * time.Second},
		Token: &config.TokenConfig{TTL: 30 * time.Minute},
	}
	cfg.Env.ServiceName = "frvttae-test"

	return cfg
}

// --- repository mocks ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*entity.UserRecord, error) {
	args := m.Called(ctx, username)
	if rec := args.Get(0); rec != nil {
		return rec.(*entity.UserRecord), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepo) Insert(ctx context.Context, rec *entity.UserRecord) (string, error) {
	args := m.Called(ctx, rec)

	return args.String(0), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, username string, fields entity.UserUpdate) error {
	args := m.Called(ctx, username, fields)

	return args.Error(0)
}

func (m *mockUserRepo) SetRole(ctx context.Context, username string, role entity.Role) error {
	args := m.Called(ctx, username, role)

	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)

	return args.Error(0)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) Append(ctx context.Context, entry *entity.AuditLogEntry) error {
	args := m.Called(ctx, entry)

	return args.Error(0)
}

func (m *mockAuditRepo) List(ctx context.Context, limit int64) ([]*entity.AuditLogEntry, error) {
	args := m.Called(ctx, limit)
	if entries := args.Get(0); entries != nil {
		return entries.([]*entity.AuditLogEntry), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAuditRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

// --- service mocks ---

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(subject string, role entity.Role) (string, time.Time, error) {
	args := m.Called(subject, role)

	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) Verify(token string) (*service.Claims, error) {
	args := m.Called(token)
	if claims := args.Get(0); claims != nil {
		return claims.(*service.Claims), args.Error(1)
	}

	return nil, args.Error(1)
}

type mockAdmitter struct {
	mock.Mock
}

func (m *mockAdmitter) Admit(data []byte, contentType string, opts service.AdmitOptions) (*entity.NormalizedImage, error) {
	args := m.Called(data, contentType, opts)
	if img := args.Get(0); img != nil {
		return img.(*entity.NormalizedImage), args.Error(1)
	}

	return nil, args.Error(1)
}

type mockEncoder struct {
	mock.Mock
}

func (m *mockEncoder) DetectFaces(ctx context.Context, img *entity.NormalizedImage, upsample int) ([]entity.Region, error) {
	args := m.Called(ctx, img, upsample)
	if regions := args.Get(0); regions != nil {
		return regions.([]entity.Region), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockEncoder) Encode(ctx context.Context, img *entity.NormalizedImage, region entity.Region) (entity.Embedding, error) {
	args := m.Called(ctx, img, region)
	if emb := args.Get(0); emb != nil {
		return emb.(entity.Embedding), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockEncoder) Matches(known, candidate entity.Embedding) bool {
	args := m.Called(known, candidate)

	return args.Bool(0)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, credential string) (*service.FederatedIdentity, error) {
	args := m.Called(ctx, credential)
	if identity := args.Get(0); identity != nil {
		return identity.(*service.FederatedIdentity), args.Error(1)
	}

	return nil, args.Error(1)
}

type mockStoreMonitor struct {
	mock.Mock
}

func (m *mockStoreMonitor) Status() service.StoreStatus {
	args := m.Called()

	return args.Get(0).(service.StoreStatus)
}
