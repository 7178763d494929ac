package sqlite

import (
	"context"
	"time"

	"duelist/internal/events"
	"duelist/internal/logging"
)

// Journal records events into a Repository. It implements events.Sink; write
// failures are logged and dropped so they never interrupt the caller.
type Journal struct {
	repo    Repository
	timeout time.Duration
}

// NewJournal creates a Journal. A non-positive timeout selects 5s.
func NewJournal(repo Repository, timeout time.Duration) *Journal {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Journal{repo: repo, timeout: timeout}
}

// Emit stores e.
func (j *Journal) Emit(e events.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.repo.CreateEvent(ctx, ToRecord(e)); err != nil {
		logging.Warnf("history: could not record %s event for %q: %v", e.Kind, e.TaskName, err)
	}
}

// ToRecord converts an event to its journal row.
func ToRecord(e events.Event) *EventRecord {
	return &EventRecord{
		ID:          e.ID,
		Kind:        string(e.Kind),
		TaskName:    e.TaskName,
		Description: e.Description,
		StartTime:   e.Start,
		Deadline:    e.Deadline,
		OccurredAt:  e.At,
		Detail:      e.Detail,
	}
}

// FromRecord converts a journal row back to an event.
func FromRecord(r *EventRecord) events.Event {
	return events.Event{
		ID:          r.ID,
		Kind:        events.Kind(r.Kind),
		TaskName:    r.TaskName,
		Description: r.Description,
		Start:       r.StartTime,
		Deadline:    r.Deadline,
		At:          r.OccurredAt,
		Detail:      r.Detail,
	}
}
