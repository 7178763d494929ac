package cli

import (
	"errors"
	"fmt"

	apperrors "duelist/internal/errors"
	"duelist/internal/logging"
	"duelist/internal/validation"
)

// ErrorHandler turns command errors into the line shown in the shell
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Message returns the user-facing text for err
func (eh *ErrorHandler) Message(err error) string {
	if errors.Is(err, errUnknownCommand) {
		return "Unknown command. Type 'help' for a list of commands."
	}
	if apperrors.ShouldLogError(err) {
		eh.log(err)
	}

	if !apperrors.IsAppError(err) {
		var validationErr *validation.ValidationError
		if errors.As(err, &validationErr) {
			return "Error: " + validationErr.GetUserFriendlyMessage()
		}
	}

	msg := "Error: " + apperrors.GetUserMessage(err)
	if hint := eh.hint(err); hint != "" {
		msg += " " + hint
	}
	return msg
}

// hint suggests what to do next after a mistake about a task name or a
// journal failure.
func (eh *ErrorHandler) hint(err error) string {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return ""
	}
	name := appErr.Field(apperrors.FieldTask)

	switch {
	case apperrors.IsTaskNotFound(err):
		return "Type 'list' to see current tasks."
	case apperrors.IsDuplicateTask(err) && name != "":
		return fmt.Sprintf("Use 'snooze %s <time>' to extend it.", name)
	case apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase):
		return "Start with --verbose for details."
	}
	return ""
}

func (eh *ErrorHandler) log(err error) {
	if appErr, ok := apperrors.AsAppError(err); ok && len(appErr.Fields) > 0 {
		logging.Debugf("command failed [%s] %s: %v", appErr.Code, appErr.LogFields(), err)
		return
	}
	logging.Debugf("command failed [%s]: %v", apperrors.GetErrorCode(err), err)
}
