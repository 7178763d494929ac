package errors

import (
	"errors"
	"fmt"
)

const (
	codeTaskNotFound  = "TASK_NOT_FOUND"
	codeDuplicateTask = "DUPLICATE_TASK"
)

// Sentinels for errors.Is. Only Type and Code are compared.
var (
	ErrTaskNotFound  = &AppError{Type: ErrorTypeNotFound, Code: codeTaskNotFound}
	ErrDuplicateTask = &AppError{Type: ErrorTypeDuplicate, Code: codeDuplicateTask}
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    "VALIDATION_FAILED",
		Message: message,
		Cause:   cause,
	}
}

// NewTaskNotFoundError reports an operation on a task name that is not in the store.
func NewTaskNotFoundError(name string) *AppError {
	err := &AppError{
		Type:    ErrorTypeNotFound,
		Code:    codeTaskNotFound,
		Message: fmt.Sprintf("Task '%s' not found.", name),
	}
	return err.With(FieldTask, name)
}

// NewDuplicateTaskError reports an add for a name that is already tracked.
func NewDuplicateTaskError(name string) *AppError {
	err := &AppError{
		Type:    ErrorTypeDuplicate,
		Code:    codeDuplicateTask,
		Message: fmt.Sprintf("Task '%s' already exists.", name),
	}
	return err.With(FieldTask, name)
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	err := &AppError{
		Type:    ErrorTypeDatabase,
		Code:    "DATABASE_ERROR",
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Cause:   cause,
	}
	return err.With(FieldOperation, operation)
}

// NewUsageError reports a shell command given too few arguments.
func NewUsageError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Code:    "USAGE",
		Message: message,
	}
}

// NewNotificationError wraps a failed notification dispatch for a task.
func NewNotificationError(task string, cause error) *AppError {
	err := &AppError{
		Type:    ErrorTypeNotification,
		Code:    "NOTIFICATION_FAILED",
		Message: fmt.Sprintf("could not deliver notification for %s", task),
		Cause:   cause,
	}
	return err.With(FieldTask, task)
}

// WrapError wraps err with a type and message. The code is the type name.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    errorType.String(),
		Message: message,
		Cause:   err,
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the given type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsTaskNotFound reports whether err is a TaskNotFoundError.
func IsTaskNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound)
}

// IsDuplicateTask reports whether err is a DuplicateTaskError.
func IsDuplicateTask(err error) bool {
	return errors.Is(err, ErrDuplicateTask)
}

// GetUserMessage returns the text shown to the user for err
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	switch {
	case appErr.Type.userError(), appErr.Type == ErrorTypeNotification:
		return appErr.Message
	case appErr.Type == ErrorTypeDatabase:
		return "A database error occurred. Please try again."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is worth a debug line. Mistakes in user
// input are not.
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return !appErr.Type.userError()
	}
	return true
}
