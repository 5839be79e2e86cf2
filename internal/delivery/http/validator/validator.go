// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	playgroundvalidator "github.com/go-playground/validator/v10"

	domainerrors "certshop/internal/domain/errors"
)

// echoValidator wraps a single validator instance; it is safe for concurrent use.
type echoValidator struct {
	validate *playgroundvalidator.Validate
}

// New builds the request validator installed on the echo server.
func New() *echoValidator {
	return &echoValidator{
		validate: playgroundvalidator.New(playgroundvalidator.WithRequiredStructEnabled()),
	}
}

// Validate checks struct tags and converts failures into the shared
// validation error so the error handler renders a 400.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
