package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a field that failed its construction-time invariant.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsValidationError checks if an error is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// validate is the shared validator instance; it caches struct metadata.
var validate = newValidator()

// newValidator reports fields by their json name so errors read first_name,
// not FirstName.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messages maps a struct field to the error text callers see.
type messages map[string]string

// validateStruct runs tag validation and converts the first failure into a
// ValidationError carrying the field's human-readable message.
func validateStruct(s any, msgs messages) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate %T: %w", s, err)
	}

	fe := fieldErrs[0]
	msg, ok := msgs[fe.Field()]
	if !ok {
		msg = fmt.Sprintf("failed on %q rule", fe.Tag())
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}
