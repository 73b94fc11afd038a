// Package validator wires go-playground/validator into echo's Validator hook.
package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "pfm/internal/domain/errors"
)

// requestValidator adapts validator.Validate to echo.Validator.
type requestValidator struct {
	validate *validator.Validate
}

// New creates the shared request validator.
func New() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

// Validate checks struct tags and maps failures to the domain validation
// error, carrying field-level detail for the response.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			details := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				details = append(details, fe.Field()+": failed on '"+fe.Tag()+"'")
			}

			return domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; "))
		}

		return domainerrors.ErrValidationFailed
	}

	return nil
}
