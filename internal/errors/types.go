package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorType is the category of an AppError
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeDuplicate    ErrorType = "duplicate"
	ErrorTypeDatabase     ErrorType = "database"
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	ErrorTypeNotification ErrorType = "notification"
)

func (et ErrorType) String() string {
	return string(et)
}

// userError reports whether errors of this type come from what the user typed.
func (et ErrorType) userError() bool {
	switch et {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeDuplicate, ErrorTypeInvalidInput:
		return true
	}
	return false
}

// Field keys set by the constructors in this package.
const (
	FieldTask      = "task"
	FieldOperation = "operation"
	FieldPath      = "path"
)

// AppError is an error with a category, a stable code and the names of the
// things it is about.
type AppError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Fields  map[string]string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on Type and Code, so the sentinels below work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

// IsType checks if this error is of the given type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// With records a field and returns e.
func (e *AppError) With(key, value string) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[key] = value
	return e
}

// Field returns the value recorded under key, or "".
func (e *AppError) Field(key string) string {
	return e.Fields[key]
}

// LogFields renders the fields as key=value pairs sorted by key.
func (e *AppError) LogFields() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%q", k, e.Fields[k])
	}
	return strings.Join(pairs, " ")
}
