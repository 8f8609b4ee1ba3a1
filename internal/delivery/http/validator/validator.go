// Package validator wires request struct validation into Echo.
package validator

import (
	domainerrors "github.com/JustKota/FrvttaeProyect/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// EchoValidator adapts go-playground/validator to Echo's Validator interface.
type EchoValidator struct {
	validate *validator.Validate
}

// New is the constructor for EchoValidator.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate runs struct tag validation and maps failures to the typed
// validation error so the error middleware renders them uniformly.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
