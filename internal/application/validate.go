package application

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"dashboard-rbac/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: field %s failed on %s", domain.ErrInvalidInput, verrs[0].Field(), verrs[0].Tag())
		}
		return domain.ErrInvalidInput
	}
	return nil
}

func validateVar(v any, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, tag)
	}
	return nil
}
