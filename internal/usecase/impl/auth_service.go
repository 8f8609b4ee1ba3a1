// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/JustKota/FrvttaeProyect/config"
	deliverycontext "github.com/JustKota/FrvttaeProyect/internal/delivery/context"
	"github.com/JustKota/FrvttaeProyect/internal/domain/entity"
	domainerrors "github.com/JustKota/FrvttaeProyect/internal/domain/errors"
	"github.com/JustKota/FrvttaeProyect/internal/domain/repository"
	"github.com/JustKota/FrvttaeProyect/internal/domain/service"
	"github.com/JustKota/FrvttaeProyect/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Detection sensitivity per flow. Registration images are expected to be
// deliberate captures; login images come from webcams under poor light, so
// login starts higher and escalates once before giving up.
const (
	registerUpsample   = 1
	loginUpsample      = 2
	loginRetryUpsample = 3
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo      repository.UserRepository
	auditRepo     repository.AuditLogRepository
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	admitter      service.ImageAdmitter
	encoder       service.FaceEncoder
	verifier      service.IdentityVerifier
	loginDeadline time.Duration
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	AuditRepo    repository.AuditLogRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Admitter     service.ImageAdmitter
	Encoder      service.FaceEncoder
	Verifier     service.IdentityVerifier
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all
// dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	loginDeadline := 30 * time.Second
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.LoginDeadline > 0 {
		loginDeadline = params.Config.Auth.LoginDeadline
	}

	return &authService{
		userRepo:      params.UserRepo,
		auditRepo:     params.AuditRepo,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		admitter:      params.Admitter,
		encoder:       params.Encoder,
		verifier:      params.Verifier,
		loginDeadline: loginDeadline,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to
// the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new password-kind account with an enrolled face.
// The username conflict check runs before any image work so a taken name
// fails cheaply; the storage layer's unique index closes the remaining race.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if !entity.ValidUsername(input.Username) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username must be 3 to 50 characters")
	}

	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	_, err := srv.userRepo.FindByUsername(ctx, input.Username)
	switch {
	case err == nil:
		return nil, errors.WithStack(domainerrors.ErrUsernameTaken)
	case errors.Is(err, repository.ErrUserNotFound):
		// Name is free, continue.
	default:
		return nil, srv.mapStoreError(ctx, err, "failed to check username availability")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("password hashing failed")
	}

	img, err := srv.admitter.Admit(input.Image, input.ImageContentType, service.AdmitOptions{})
	if err != nil {
		return nil, err
	}

	embedding, err := srv.extractSingleFace(ctx, img, registerUpsample, false)
	if err != nil {
		return nil, err
	}

	rec := &entity.UserRecord{
		Username:      input.Username,
		Email:         input.Email,
		PasswordHash:  passwordHash,
		Role:          entity.RoleNormal,
		Kind:          entity.KindPassword,
		FaceEmbedding: embedding,
		FaceImage:     input.Image,
	}

	id, err := srv.userRepo.Insert(ctx, rec)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, errors.WithStack(domainerrors.ErrUsernameTaken)
		}

		return nil, srv.mapStoreError(ctx, err, "failed to persist new account")
	}

	srv.log(ctx).Info("Registration completed",
		slog.String("username", input.Username),
		slog.String("userID", id))

	return &usecase.RegisterOutput{
		ID:       id,
		Username: rec.Username,
		Role:     rec.Role,
	}, nil
}

// FaceLogin authenticates with password plus face biometric. Both factors
// must pass; every credential-side rejection collapses into the same error
// so callers cannot probe which factor failed.
func (srv *authService) FaceLogin(ctx context.Context, input *usecase.FaceLoginInput) (*usecase.LoginOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, srv.loginDeadline)
	defer cancel()

	srv.log(ctx).Info("Starting face login", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
		}

		return nil, srv.mapStoreError(ctx, err, "failed to load account for login")
	}

	// Federated principals hold no local password and no enrolled face.
	if user.Kind == entity.KindFederated || user.PasswordHash == "" {
		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	role := srv.normalizeRole(ctx, user)

	img, err := srv.admitter.Admit(input.Image, input.ImageContentType, service.AdmitOptions{Enhance: true})
	if err != nil {
		return nil, err
	}

	candidate, err := srv.extractSingleFace(ctx, img, loginUpsample, true)
	if err != nil {
		return nil, err
	}

	if !user.Enrolled() {
		return nil, errors.WithStack(domainerrors.ErrNoEnrolledBiometric)
	}

	if !srv.encoder.Matches(user.FaceEmbedding, candidate) {
		srv.log(ctx).Warn("Face comparison rejected login", slog.String("username", input.Username))

		return nil, errors.WithStack(domainerrors.ErrBiometricMismatch)
	}

	out, err := srv.issueSession(ctx, user.Username, role, entity.MethodPasswordAndFace)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Face login completed", slog.String("username", input.Username))

	return out, nil
}

// FederatedLogin authenticates with an external identity provider credential,
// creating the account on first sight.
func (srv *authService) FederatedLogin(ctx context.Context, input *usecase.FederatedLoginInput) (*usecase.LoginOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, srv.loginDeadline)
	defer cancel()

	identity, err := srv.verifier.Verify(ctx, input.Credential)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Federated identity verified", slog.String("email", identity.Email))

	user, err := srv.userRepo.FindByUsername(ctx, identity.Email)
	switch {
	case err == nil:
		if user.Kind != entity.KindFederated {
			// A local account already owns this name; refuse to shadow it.
			return nil, errors.WithStack(domainerrors.ErrUsernameTaken)
		}
	case errors.Is(err, repository.ErrUserNotFound):
		user, err = srv.createFederatedAccount(ctx, identity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, srv.mapStoreError(ctx, err, "failed to load federated account")
	}

	role := srv.normalizeRole(ctx, user)

	out, err := srv.issueSession(ctx, user.Username, role, entity.MethodFederated)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Federated login completed", slog.String("username", user.Username))

	return out, nil
}

// createFederatedAccount inserts a first-login federated record. A losing
// race against a concurrent first login resolves by re-reading the winner.
func (srv *authService) createFederatedAccount(ctx context.Context, identity *service.FederatedIdentity) (*entity.UserRecord, error) {
	rec := &entity.UserRecord{
		Username:    identity.Email,
		Email:       identity.Email,
		Role:        entity.RoleNormal,
		Kind:        entity.KindFederated,
		FederatedID: identity.Subject,
	}

	if _, err := srv.userRepo.Insert(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			existing, findErr := srv.userRepo.FindByUsername(ctx, identity.Email)
			if findErr != nil {
				return nil, srv.mapStoreError(ctx, findErr, "failed to load racing federated account")
			}
			if existing.Kind != entity.KindFederated {
				return nil, errors.WithStack(domainerrors.ErrUsernameTaken)
			}

			return existing, nil
		}

		return nil, srv.mapStoreError(ctx, err, "failed to create federated account")
	}

	srv.log(ctx).Info("Created federated account", slog.String("username", rec.Username))

	return rec, nil
}

// extractSingleFace runs detection and encoding, enforcing the exactly-one-
// face gate. Login escalates sensitivity once when nothing is found.
func (srv *authService) extractSingleFace(ctx context.Context, img *entity.NormalizedImage, upsample int, retryHigher bool) (entity.Embedding, error) {
	regions, err := srv.encoder.DetectFaces(ctx, img, upsample)
	if err != nil {
		srv.log(ctx).Error("Face detection failed", slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("face detection failed")
	}

	if len(regions) == 0 && retryHigher {
		regions, err = srv.encoder.DetectFaces(ctx, img, loginRetryUpsample)
		if err != nil {
			srv.log(ctx).Error("Face detection retry failed", slog.Any("error", err))

			return nil, domainerrors.ErrInternal.WrapMessage("face detection failed")
		}
	}

	switch {
	case len(regions) == 0:
		return nil, errors.WithStack(domainerrors.ErrNoFaceDetected)
	case len(regions) > 1:
		return nil, errors.WithStack(domainerrors.ErrMultipleFacesDetected)
	}

	embedding, err := srv.encoder.Encode(ctx, img, regions[0])
	if err != nil {
		srv.log(ctx).Error("Face encoding failed", slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("face encoding failed")
	}

	return embedding, nil
}

// normalizeRole heals legacy records that predate roles. The write is
// best-effort; a failure only means the next login tries again.
func (srv *authService) normalizeRole(ctx context.Context, user *entity.UserRecord) entity.Role {
	if user.Role.IsValid() {
		return user.Role
	}

	if err := srv.userRepo.SetRole(ctx, user.Username, entity.RoleNormal); err != nil {
		srv.log(ctx).Warn("Failed to normalize legacy role",
			slog.String("username", user.Username),
			slog.Any("error", err))
	}

	return entity.RoleNormal
}

// issueSession mints the session token and appends the audit entry. The
// audit write never blocks a successful login; a failure is logged only.
func (srv *authService) issueSession(ctx context.Context, username string, role entity.Role, method entity.LoginMethod) (*usecase.LoginOutput, error) {
	token, expiresAt, err := srv.tokenService.Issue(username, role)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("token issuance failed")
	}

	if err := srv.auditRepo.Append(ctx, &entity.AuditLogEntry{
		Username: username,
		Method:   method,
	}); err != nil {
		srv.log(ctx).Warn("Failed to append login audit entry",
			slog.String("username", username),
			slog.Any("error", err))
	}

	return &usecase.LoginOutput{
		Username:  username,
		Role:      role,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// mapStoreError translates repository availability failures into the typed
// service-unavailable error; anything else is an internal fault.
func (srv *authService) mapStoreError(ctx context.Context, err error, msg string) error {
	if errors.Is(err, repository.ErrStoreUnavailable) {
		srv.log(ctx).Error("Document store unavailable", slog.Any("error", err))

		return domainerrors.ErrStoreUnavailable.WrapMessage(msg)
	}

	srv.log(ctx).Error(msg, slog.Any("error", err))

	return domainerrors.ErrInternal.WrapMessage(msg)
}
