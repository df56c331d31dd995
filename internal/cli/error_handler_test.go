package cli

import (
	"errors"
	"testing"

	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "add card",
			err:       apperrors.NewValidationError("invalid input", nil),
			expected:  "failed to add card: invalid input",
		},
		{
			name:      "Not found error",
			operation: "delete card",
			err:       apperrors.NewNotFoundError("card", "123"),
			expected:  "failed to delete card: card not found: 123",
		},
		{
			name:      "Storage error",
			operation: "list cards",
			err:       apperrors.NewStorageError("read", errors.New("disk full")),
			expected:  "failed to list cards: A storage error occurred. Please try again.",
		},
		{
			name:      "Save failure with transport cause",
			operation: "mark card done",
			err: apperrors.WrapError(
				apperrors.NewTransportError("save cards", 500, nil),
				apperrors.ErrorTypeTransport,
				apperrors.MessageSaveFailed,
			),
			expected: "failed to mark card done: Failed to save changes. The card server could not be reached. Please try again.",
		},
		{
			name:      "Load failure with plain cause",
			operation: "list cards",
			err:       apperrors.WrapError(errors.New("boom"), apperrors.ErrorTypeStorage, apperrors.MessageLoadFailed),
			expected:  "failed to list cards: Failed to load cards",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Validation error",
			err:      apperrors.NewValidationError("invalid input", nil),
			expected: "invalid input",
		},
		{
			name:     "Not found error",
			err:      apperrors.NewNotFoundError("card", "123"),
			expected: "card not found: 123",
		},
		{
			name:     "Parse error",
			err:      apperrors.NewParseError("cards.json", errors.New("unexpected EOF")),
			expected: "The card document is not valid JSON.",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.HandleSimple(tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.HandleSimple() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_IsValidationError(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "AppError validation",
			err:      apperrors.NewValidationError("invalid input", nil),
			expected: true,
		},
		{
			name: "Field validation error",
			err: &validation.ValidationError{
				Errors: []validation.FieldError{
					{Field: "description", Message: "invalid"},
				},
			},
			expected: true,
		},
		{
			name:     "Storage error",
			err:      apperrors.NewStorageError("write", nil),
			expected: false,
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.IsValidationError(tt.err)
			if result != tt.expected {
				t.Errorf("ErrorHandler.IsValidationError() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestErrorHandler_IsNotFoundError(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Not found error",
			err:      apperrors.NewNotFoundError("card", "123"),
			expected: true,
		},
		{
			name:     "Validation error",
			err:      apperrors.NewValidationError("invalid input", nil),
			expected: false,
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.IsNotFoundError(tt.err)
			if result != tt.expected {
				t.Errorf("ErrorHandler.IsNotFoundError() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestErrorHandler_GetErrorCode(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "App error",
			err:      apperrors.NewValidationError("invalid input", nil),
			expected: "VALIDATION_FAILED",
		},
		{
			name:     "Wrapped store error",
			err:      apperrors.WrapError(errors.New("x"), apperrors.ErrorTypeStorage, apperrors.MessageSaveFailed),
			expected: "storage",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "UNKNOWN_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.GetErrorCode(tt.err)
			if result != tt.expected {
				t.Errorf("ErrorHandler.GetErrorCode() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleValidationError(t *testing.T) {
	eh := NewErrorHandler()

	validationErr := &validation.ValidationError{
		Errors: []validation.FieldError{
			{Field: "description", Message: "description is required"},
		},
	}

	result := eh.Handle("add card", validationErr)
	expected := "failed to add card: description is required"

	if result.Error() != expected {
		t.Errorf("ErrorHandler.Handle() with validation error = %v, want %v", result.Error(), expected)
	}
}

func TestErrorHandler_HandleNilError(t *testing.T) {
	eh := NewErrorHandler()

	if result := eh.Handle("add card", nil); result != nil {
		t.Errorf("ErrorHandler.Handle() with nil error = %v, want nil", result)
	}
	if result := eh.HandleSimple(nil); result != nil {
		t.Errorf("ErrorHandler.HandleSimple() with nil error = %v, want nil", result)
	}
}

func TestErrorHandler_HandleKeepsCause(t *testing.T) {
	eh := NewErrorHandler()
	cause := apperrors.NewNotFoundError("card", "abc")

	err := eh.Handle("edit card", cause)
	if !errors.Is(err, cause) {
		t.Errorf("ErrorHandler.Handle() lost its cause: %v", err)
	}
	if got := eh.GetErrorCode(err); got != cause.Code {
		t.Errorf("GetErrorCode(Handle()) = %v, want %v", got, cause.Code)
	}
}

func TestErrorHandler_ExitCode(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: 0},
		{name: "not found", err: eh.Handle("delete card", apperrors.NewNotFoundError("card", "x")), expected: ExitNotFound},
		{name: "invalid input", err: eh.Handle("edit card", apperrors.NewInvalidInputError("id", "", "required")), expected: ExitUsage},
		{name: "validation", err: eh.Handle("add card", validation.NewValidationError()), expected: ExitUsage},
		{name: "storage", err: eh.Handle("list cards", apperrors.NewStorageError("read", errors.New("disk"))), expected: ExitFailure},
		{name: "plain", err: errors.New("unknown flag"), expected: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.expected {
				t.Errorf("ExitCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}
