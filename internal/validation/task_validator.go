package validation

import (
	"fmt"
	"strings"
)

// Export formats accepted by the shell.
const (
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

// TaskValidator validates the arguments of shell commands
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a task validator. v may be nil for default limits.
func NewTaskValidator(v *Validator) *TaskValidator {
	if v == nil {
		v = NewValidator()
	}
	return &TaskValidator{validator: v}
}

// ValidateTaskName checks that name is present, a single word and within
// the configured length.
func (tv *TaskValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(name)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("task name")
		return validationError.result()
	}

	if !tv.validator.IsValidTaskNameLength(trimmed) {
		validationError.AddInvalidLengthError("task name", trimmed, tv.validator.MaxTaskNameLength())
	}
	if !tv.validator.IsValidTaskName(trimmed) {
		validationError.AddInvalidCharacterError("task name", trimmed)
	}

	return validationError.result()
}

// GetValidTaskName returns the trimmed name if it is valid
func (tv *TaskValidator) GetValidTaskName(name string) (string, error) {
	if err := tv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(name), nil
}

// ValidateExportFormat checks the argument of the export command
func (tv *TaskValidator) ValidateExportFormat(format string) error {
	validationError := NewValidationError()
	format = strings.ToLower(strings.TrimSpace(format))

	if format == "" {
		validationError.AddRequiredError("format")
	} else if !tv.validator.IsOneOf(format, FormatCSV, FormatYAML) {
		validationError.AddInvalidValueError("format", format, fmt.Sprintf("expected %s or %s", FormatCSV, FormatYAML))
	}

	return validationError.result()
}

// ParseHistoryLimit parses the optional count argument of the history
// command. An empty argument yields fallback.
func (tv *TaskValidator) ParseHistoryLimit(arg string, fallback int) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return fallback, nil
	}

	n, ok := tv.validator.IsPositiveInt(arg)
	if !ok {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("count", arg, "must be a positive integer")
		return 0, validationError.result()
	}
	return n, nil
}
