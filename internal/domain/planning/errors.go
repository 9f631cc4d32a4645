package planning

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all planning domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// DataValidationError reports malformed or inconsistent input data.
// The pipeline aborts on these; everything downstream of validation is
// expressed as alerts, never errors.
type DataValidationError struct {
	*DomainError
	Field string
}

func NewDataValidationError(field, message string) *DataValidationError {
	return &DataValidationError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s: %s", field, message)},
		Field:       field,
	}
}

// IsDataValidation reports whether err is (or wraps) a validation
// failure, used by the CLI to choose exit code 2.
func IsDataValidation(err error) bool {
	var validationErr *DataValidationError
	return errors.As(err, &validationErr)
}
