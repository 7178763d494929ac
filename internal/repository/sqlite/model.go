package sqlite

import "time"

// EventRecord is a row of the events journal.
type EventRecord struct {
	ID          string
	Kind        string
	TaskName    string
	Description string
	StartTime   time.Time
	Deadline    time.Time
	OccurredAt  time.Time
	Detail      string
}
