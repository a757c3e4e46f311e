package models

import (
	"errors"
	"fmt"
	"strings"
)

// Hard errors. They abort the mutation and are returned to the caller as-is.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateName     = errors.New("group name already exists")
	ErrDuplicateMerchant = errors.New("merchant already exists in this group")
	ErrDuplicateItem     = errors.New("an open item with this description already exists")
	ErrInvalidLeader     = errors.New("only members can be leaders")
	ErrPermission        = errors.New("permission denied")
	ErrInvalidState      = errors.New("invalid state")
	ErrValidation        = errors.New("validation error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
