package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("validation failed")

type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Details, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a request payload against its `validate` tags.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	details := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		details = append(details, describeFieldError(fieldErr))
	}
	return &ValidationError{Details: details}
}

func describeFieldError(fieldErr validator.FieldError) string {
	// Namespace is "TypeName.employees[0].name"; drop the type name.
	name := fieldErr.Namespace()
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", name)
	case "max":
		return fmt.Sprintf("%s: must be at most %s characters", name, fieldErr.Param())
	case "lte":
		return fmt.Sprintf("%s: must be at most %s", name, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s: must be at least %s", name, fieldErr.Param())
	default:
		return fmt.Sprintf("%s: failed %s validation", name, fieldErr.Tag())
	}
}
