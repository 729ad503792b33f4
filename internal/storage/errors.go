package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when an operation targets a row that does not
// exist. Deletes are exempt: deleting a missing row is a no-op so client
// retry logic stays simple.
var ErrNotFound = errors.New("not found")

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned when a create input is rejected at the
// repository boundary, before any SQL runs.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed")
	for i, fe := range e.Fields {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		sb.WriteString(fmt.Sprintf("%s %s", fe.Field, fe.Message))
	}
	return sb.String()
}

// NewValidationError converts validator output into a *ValidationError.
// Non-validator errors pass through unchanged.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed %q", fe.Tag()),
		})
	}
	return ve
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
