package storage

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestNewValidationError(t *testing.T) {
	type input struct {
		Name string `validate:"required"`
		Age  int    `validate:"min=1"`
	}
	err := NewValidationError(validator.New().Struct(&input{}))
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "Name") || !strings.Contains(msg, "Age") {
		t.Errorf("message %q should name both fields", msg)
	}
}

func TestNewValidationErrorPassthrough(t *testing.T) {
	if NewValidationError(nil) != nil {
		t.Error("nil should stay nil")
	}
	plain := errors.New("disk full")
	if got := NewValidationError(plain); got != plain {
		t.Errorf("non-validator error should pass through, got %v", got)
	}
	if IsValidation(plain) {
		t.Error("plain error is not a validation error")
	}
}
