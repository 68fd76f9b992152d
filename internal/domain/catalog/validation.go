package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	librisErrors "github.com/alexisbeaulieu97/libris/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			if label := field.Tag.Get("label"); label != "" {
				return label
			}
			return field.Name
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks the field constraints of a Credentials, BookInput or
// BookUpdate value. The first violation is returned as a ValidationError
// with a message suitable for display.
func Validate(value interface{}) error {
	if err := validatorInstance().Struct(value); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return librisErrors.NewValidationError("", err.Error(), err)
	}

	fe := ves[0]
	field := strings.ToLower(fe.Field())
	return librisErrors.NewValidationError(field, messageFor(fe), err)
}

func messageFor(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation for tag '%s'", label, fe.Tag())
	}
}
