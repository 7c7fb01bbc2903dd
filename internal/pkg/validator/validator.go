// Package validator validates structs through their `validate` tags with
// go-playground/validator and reports every violated rule.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is joined with one error per violated rule.
var ErrValidationFailed = errors.New("struct validation failed")

var validator = gvalidator.New(gvalidator.WithRequiredStructEnabled())

// Example: "'Config.Redis.Addr': value 'redis' does not meet the requirements for the 'hostname_port' validation"
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, fieldErr := range validationErrors {
		errs = append(errs, fmt.Errorf(errStringFormat, fieldErr.Namespace(), fieldErr.Value(), fieldErr.Tag()))
	}

	return errors.Join(errs...)
}

// Validate checks v against its tags. The returned error matches
// ErrValidationFailed when a rule is violated.
func Validate(v any) error {
	if err := validator.Struct(v); err != nil {
		return formatError(err)
	}
	return nil
}
