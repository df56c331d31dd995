package validation

import (
	"errors"
	"fmt"
	"strings"

	apperrors "cue-cards/internal/errors"
)

// ValidationErrorType represents the type of validation error
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidLength ValidationErrorType = "invalid_length"
	ErrorTypeInvalidRange  ValidationErrorType = "invalid_range"
	ErrorTypeDuplicate     ValidationErrorType = "duplicate"
)

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

// Error implements the error interface for FieldError
func (fe *FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", fe.Field, fe.Message)
}

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates a new ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{
		Errors: make([]FieldError, 0),
	}
}

// Error implements the error interface for ValidationError
func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation error"
	case 1:
		return ve.Errors[0].Error()
	}

	messages := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(messages, "; "))
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// HasErrors returns true if the ValidationError has any errors
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// AddError adds a new field error to the validation error
func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    errorType,
		Message: message,
		Value:   value,
	})
}

// AddRequiredError adds a required field error
func (ve *ValidationError) AddRequiredError(field string) {
	ve.AddError(field, ErrorTypeRequired, fmt.Sprintf("%s is required", field), nil)
}

// AddInvalidLengthError adds a maximum length error
func (ve *ValidationError) AddInvalidLengthError(field string, value interface{}, max int) {
	ve.AddError(field, ErrorTypeInvalidLength, fmt.Sprintf("%s must be at most %d characters long", field, max), value)
}

// AddInvalidRangeError adds an out of range error
func (ve *ValidationError) AddInvalidRangeError(field string, value interface{}, min, max int) {
	ve.AddError(field, ErrorTypeInvalidRange, fmt.Sprintf("%s must be between %d and %d", field, min, max), value)
}

// AddDuplicateError adds a duplicate value error
func (ve *ValidationError) AddDuplicateError(field string, value interface{}) {
	ve.AddError(field, ErrorTypeDuplicate, fmt.Sprintf("%s %v is used more than once", field, value), value)
}

// merge copies the field errors of err into ve when err is a ValidationError
func (ve *ValidationError) merge(err error) {
	if other, ok := err.(*ValidationError); ok {
		ve.Errors = append(ve.Errors, other.Errors...)
	}
}

// errOrNil returns ve only when it holds errors
func (ve *ValidationError) errOrNil() error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// GetFieldErrors returns all errors for a specific field
func (ve *ValidationError) GetFieldErrors(field string) []FieldError {
	var fieldErrors []FieldError
	for _, err := range ve.Errors {
		if err.Field == field {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

// GetUserFriendlyMessage returns a user-friendly error message
func (ve *ValidationError) GetUserFriendlyMessage() string {
	if len(ve.Errors) == 0 {
		return "Input validation failed"
	}

	if len(ve.Errors) == 1 {
		return ve.Errors[0].Message
	}

	messages := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		messages = append(messages, fmt.Sprintf("- %s", err.Message))
	}
	return fmt.Sprintf("Multiple validation errors occurred:\n%s", strings.Join(messages, "\n"))
}

// ToAppError converts the validation failure into the application error taxonomy
func (ve *ValidationError) ToAppError() *apperrors.AppError {
	return apperrors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
}
