// Package handler contains the HTTP handlers for the application.
package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/JustKota/FrvttaeProyect/internal/delivery/http/response"
	domainerrors "github.com/JustKota/FrvttaeProyect/internal/domain/errors"
	"github.com/JustKota/FrvttaeProyect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// maxImageBytes caps one uploaded face capture.
const maxImageBytes = 10 << 20

// AuthHandler holds dependencies for the authentication handlers.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// federatedLoginRequest is the JSON body of a federated login.
type federatedLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// registerResponse is the public view of a created account.
type registerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// loginResponse is the public view of an issued session.
type loginResponse struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// Register handles the multipart registration request: credentials as form
// fields plus one face capture file.
func (h *AuthHandler) Register(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return response.BindingError(c, domainerrors.ErrValidationFailed.ErrorCode(), "username and password are required")
	}

	image, contentType, err := readImageFile(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username:         username,
		Email:            c.FormValue("email"),
		Password:         password,
		Image:            image,
		ImageContentType: contentType,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, registerResponse{
		ID:       output.ID,
		Username: output.Username,
		Role:     output.Role.String(),
	}, "User registered successfully")
}

// FaceLogin handles the multipart password-plus-face login request.
func (h *AuthHandler) FaceLogin(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return response.BindingError(c, domainerrors.ErrValidationFailed.ErrorCode(), "username and password are required")
	}

	image, contentType, err := readImageFile(c)
	if err != nil {
		return err
	}

	output, err := h.uc.FaceLogin(c.Request().Context(), &usecase.FaceLoginInput{
		Username:         username,
		Password:         password,
		Image:            image,
		ImageContentType: contentType,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newLoginResponse(output), "Login successful")
}

// FederatedLogin handles the external identity login request.
func (h *AuthHandler) FederatedLogin(c echo.Context) error {
	var req federatedLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, domainerrors.ErrValidationFailed.ErrorCode(), "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.FederatedLogin(c.Request().Context(), &usecase.FederatedLoginInput{
		Credential: req.Credential,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newLoginResponse(output), "Login successful")
}

func newLoginResponse(output *usecase.LoginOutput) loginResponse {
	return loginResponse{
		Username:  output.Username,
		Role:      output.Role.String(),
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// readImageFile extracts the uploaded face capture from the multipart form.
// Failures surface as typed validation errors for the error middleware.
func readImageFile(c echo.Context) ([]byte, string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, "", domainerrors.ErrValidationFailed.WithDetails("image file is required")
	}
	if fileHeader.Size > maxImageBytes {
		return nil, "", domainerrors.ErrValidationFailed.WithDetails("image file is too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to open uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to read uploaded image")
	}

	return data, fileHeader.Header.Get("Content-Type"), nil
}
