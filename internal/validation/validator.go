package validation

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"duelist/internal/config"
)

// DefaultTaskNameMaxLength applies when no configuration is given.
const DefaultTaskNameMaxLength = 64

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a validator with default limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a validator using cfg's limits
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTaskNameLength checks the name against the configured maximum, in runes
func (v *Validator) IsValidTaskNameLength(name string) bool {
	return utf8.RuneCountInString(name) <= v.getTaskNameMaxLength()
}

// IsValidTaskName reports whether name is a single word without control characters
func (v *Validator) IsValidTaskName(name string) bool {
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// IsPositiveInt parses s as a positive integer
func (v *Validator) IsPositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// IsOneOf reports whether s equals one of allowed
func (v *Validator) IsOneOf(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// MaxTaskNameLength returns the configured limit
func (v *Validator) MaxTaskNameLength() int {
	return v.getTaskNameMaxLength()
}

func (v *Validator) getTaskNameMaxLength() int {
	if v.config != nil && v.config.Validation.TaskNameMaxLength > 0 {
		return v.config.Validation.TaskNameMaxLength
	}
	return DefaultTaskNameMaxLength
}
