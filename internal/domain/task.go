package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Task represents a tracked task with a deadline.
// Name is the case-normalized key the task is stored under.
type Task struct {
	Name        string
	Description string
	Start       time.Time
	Deadline    time.Time
}

// NewTask creates a Task starting at start that falls due after d.
func NewTask(name, description string, start time.Time, d time.Duration) Task {
	return Task{
		Name:        name,
		Description: description,
		Start:       start,
		Deadline:    start.Add(d),
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	if t.Name == "" || t.Start.IsZero() {
		return false
	}
	return !t.Deadline.Before(t.Start)
}

// IsDue reports whether the deadline is at or before now.
func (t Task) IsDue(now time.Time) bool {
	return !t.Deadline.After(now)
}

// TimeLeft returns the time until the deadline. It is negative once overdue.
func (t Task) TimeLeft(now time.Time) time.Duration {
	return t.Deadline.Sub(now)
}

// Elapsed returns the time since the task was added.
func (t Task) Elapsed(now time.Time) time.Duration {
	return now.Sub(t.Start)
}

// Snoozed returns a copy with the deadline pushed back by d.
func (t Task) Snoozed(d time.Duration) Task {
	t.Deadline = t.Deadline.Add(d)
	return t
}

// DisplayName returns the name with its first letter upper-cased.
func (t Task) DisplayName() string {
	r, size := utf8.DecodeRuneInString(t.Name)
	if r == utf8.RuneError {
		return t.Name
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(t.Name[size:])
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}
