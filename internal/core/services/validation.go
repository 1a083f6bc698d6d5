// internal/core/services/validation.go
package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/ammerola/warehouse-be/internal/core/domain"
)

// NewValidator returns a validator that reports fields by their JSON name
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateStruct converts the first validator failure into a ValidationError
func ValidateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	fe := fieldErrs[0]
	label := fieldLabel(fe.Field())
	var msg string
	switch fe.Tag() {
	case "required":
		msg = label + " is required"
	case "email":
		msg = label + " must be a valid email address"
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "min":
		msg = fmt.Sprintf("%s must contain at least %s entries", label, fe.Param())
	case "gt":
		msg = fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "unique":
		msg = label + " must not contain duplicates"
	default:
		msg = label + " is invalid"
	}
	return &domain.ValidationError{Field: fe.Field(), Message: msg}
}

func fieldLabel(field string) string {
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
