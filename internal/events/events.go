// Package events carries the status records emitted for task lifecycle
// changes: adds, removals, snoozes and alerts.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"duelist/internal/domain"
)

// Kind identifies what happened to a task.
type Kind string

const (
	KindAdded        Kind = "added"
	KindRemoved      Kind = "removed"
	KindSnoozed      Kind = "snoozed"
	KindAlerted      Kind = "alerted"
	KindNotifyFailed Kind = "notify_failed"
)

// Event is a single lifecycle record.
type Event struct {
	ID          string
	Kind        Kind
	TaskName    string
	Description string
	Start       time.Time
	Deadline    time.Time
	At          time.Time
	Detail      string
}

// New creates an event for task with a fresh ID.
func New(kind Kind, task domain.Task, at time.Time) Event {
	return Event{
		ID:          uuid.NewString(),
		Kind:        kind,
		TaskName:    task.Name,
		Description: task.Description,
		Start:       task.Start,
		Deadline:    task.Deadline,
		At:          at,
	}
}

// Task rebuilds the task snapshot carried by the event.
func (e Event) Task() domain.Task {
	return domain.Task{
		Name:        e.TaskName,
		Description: e.Description,
		Start:       e.Start,
		Deadline:    e.Deadline,
	}
}

// Sink receives events. Implementations must be safe for concurrent use;
// the store and the monitor emit from different goroutines.
type Sink interface {
	Emit(e Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(e Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

type multiSink []Sink

// Multi returns a Sink that forwards each event to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	var ms multiSink
	for _, s := range sinks {
		if s != nil {
			ms = append(ms, s)
		}
	}
	return ms
}

func (ms multiSink) Emit(e Event) {
	for _, s := range ms {
		s.Emit(e)
	}
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit appends e.
func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfKind returns the recorded events with the given kind.
func (r *Recorder) OfKind(kind Kind) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events of kind were recorded for the task name.
func (r *Recorder) Count(kind Kind, name string) int {
	n := 0
	for _, e := range r.OfKind(kind) {
		if e.TaskName == name {
			n++
		}
	}
	return n
}
