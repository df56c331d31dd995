package cli

import (
	"fmt"

	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/logging"
	"cue-cards/internal/validation"
)

// Process exit codes for failed commands
const (
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// commandError carries the user-facing message and keeps the cause for errors.As
type commandError struct {
	message string
	cause   error
}

func (e *commandError) Error() string { return e.message }

func (e *commandError) Unwrap() error { return e.cause }

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.ShouldLogError(err) {
		logging.Debugf("%s [%s]: %v\n", operation, eh.GetErrorCode(err), err)
	}
	return &commandError{message: fmt.Sprintf("failed to %s: %s", operation, eh.message(err)), cause: err}
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	return &commandError{message: eh.message(err), cause: err}
}

func (eh *ErrorHandler) message(err error) string {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return validationErr.GetUserFriendlyMessage()
	}

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return err.Error()
	}

	// Store failures carry the store's message and the cause's detail.
	if appErr.Message == apperrors.MessageSaveFailed || appErr.Message == apperrors.MessageLoadFailed {
		if appErr.Cause != nil && apperrors.IsAppError(appErr.Cause) {
			return fmt.Sprintf("%s. %s", appErr.Message, apperrors.GetUserMessage(appErr.Cause))
		}
		return appErr.Message
	}
	return apperrors.GetUserMessage(err)
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return apperrors.IsErrorType(err, apperrors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return apperrors.GetErrorCode(err)
}

// ExitCode maps a command error to the process exit status
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case eh.IsValidationError(err), apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput):
		return ExitUsage
	case eh.IsNotFoundError(err):
		return ExitNotFound
	default:
		return ExitFailure
	}
}

// ExitCode maps err to the process exit status
func ExitCode(err error) int {
	return NewErrorHandler().ExitCode(err)
}
