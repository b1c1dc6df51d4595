// Package validation checks form payloads before any network call is made.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	internal_errors "github.com/studentcollab/collabhub/shared/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their json names, which match the form field names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates v and returns a single ErrValidation-kinded error naming
// the first failing field.
func Struct(v any) error {
	return StructWithMessage(v, "")
}

// StructWithMessage is Struct with a fixed user-facing message.
func StructWithMessage(v any, msg string) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return internal_errors.Validation("Invalid form data")
	}
	if msg != "" {
		return internal_errors.Validation(msg)
	}

	first := verrs[0]
	switch first.Tag() {
	case "required":
		return internal_errors.Validation(first.Field() + " is required")
	case "email":
		return internal_errors.Validation(first.Field() + " must be a valid email")
	default:
		return internal_errors.Validation(first.Field() + " is invalid")
	}
}
