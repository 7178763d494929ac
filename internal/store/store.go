// Package store holds the in-memory task list shared by the interactive
// shell and the due-task monitor. All access goes through a single mutex.
package store

import (
	"sort"
	"sync"
	"time"

	"duelist/internal/domain"
	"duelist/internal/duration"
	"duelist/internal/errors"
	"duelist/internal/events"
)

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithSink sets where lifecycle events are emitted.
func WithSink(sink events.Sink) Option {
	return func(s *Store) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// Store maps task names to tasks. Names are used as given; callers normalize
// them before they reach the store.
type Store struct {
	mu    sync.Mutex
	tasks map[string]domain.Task

	now  func() time.Time
	sink events.Sink
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		tasks: make(map[string]domain.Task),
		now:   time.Now,
		sink:  events.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add tracks a new task due after durationText (see duration.Parse) from now.
// An existing name is rejected with a DuplicateTaskError.
func (s *Store) Add(name, description, durationText string) (domain.Task, error) {
	d := duration.Parse(durationText)

	s.mu.Lock()
	if _, exists := s.tasks[name]; exists {
		s.mu.Unlock()
		return domain.Task{}, errors.NewDuplicateTaskError(name)
	}
	now := s.now()
	task := domain.NewTask(name, description, now, d)
	s.tasks[name] = task
	s.mu.Unlock()

	s.sink.Emit(events.New(events.KindAdded, task, now))
	return task, nil
}

// Remove deletes the task.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	task, exists := s.tasks[name]
	if !exists {
		s.mu.Unlock()
		return errors.NewTaskNotFoundError(name)
	}
	delete(s.tasks, name)
	now := s.now()
	s.mu.Unlock()

	s.sink.Emit(events.New(events.KindRemoved, task, now))
	return nil
}

// Snooze pushes the task's current deadline back by durationText.
func (s *Store) Snooze(name, durationText string) (domain.Task, error) {
	d := duration.Parse(durationText)

	s.mu.Lock()
	task, exists := s.tasks[name]
	if !exists {
		s.mu.Unlock()
		return domain.Task{}, errors.NewTaskNotFoundError(name)
	}
	task = task.Snoozed(d)
	s.tasks[name] = task
	now := s.now()
	s.mu.Unlock()

	s.sink.Emit(events.New(events.KindSnoozed, task, now))
	return task, nil
}

// Get returns a copy of the task.
func (s *Store) Get(name string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[name]
	if !exists {
		return domain.Task{}, errors.NewTaskNotFoundError(name)
	}
	return task, nil
}

// GetDescription returns the task's description.
func (s *Store) GetDescription(name string) (string, error) {
	task, err := s.Get(name)
	if err != nil {
		return "", err
	}
	return task.Description, nil
}

// GetDeadline returns the task's deadline.
func (s *Store) GetDeadline(name string) (time.Time, error) {
	task, err := s.Get(name)
	if err != nil {
		return time.Time{}, err
	}
	return task.Deadline, nil
}

// GetStart returns when the task was added.
func (s *Store) GetStart(name string) (time.Time, error) {
	task, err := s.Get(name)
	if err != nil {
		return time.Time{}, err
	}
	return task.Start, nil
}

// TimeLeft returns deadline minus now; negative when the task is overdue.
func (s *Store) TimeLeft(name string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[name]
	if !exists {
		return 0, errors.NewTaskNotFoundError(name)
	}
	return task.TimeLeft(s.now()), nil
}

// ListSorted returns a snapshot of all tasks ordered by ascending deadline.
// Equal deadlines are ordered by name.
func (s *Store) ListSorted() []domain.Task {
	s.mu.Lock()
	tasks := make([]domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	s.mu.Unlock()

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Deadline.Equal(tasks[j].Deadline) {
			return tasks[i].Name < tasks[j].Name
		}
		return tasks[i].Deadline.Before(tasks[j].Deadline)
	})
	return tasks
}

// DueNames returns the names of tasks whose deadline is at or before now,
// sorted by name.
func (s *Store) DueNames(now time.Time) []string {
	s.mu.Lock()
	var names []string
	for name, task := range s.tasks {
		if task.IsDue(now) {
			names = append(names, name)
		}
	}
	s.mu.Unlock()

	sort.Strings(names)
	return names
}

// Claim removes and returns the task if it is still present and still due at
// now. It reports false when the task was removed or snoozed past now since
// it was found due. No event is emitted; the caller reports the outcome.
func (s *Store) Claim(name string, now time.Time) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[name]
	if !exists || !task.IsDue(now) {
		return domain.Task{}, false
	}
	delete(s.tasks, name)
	return task, true
}

// Names returns every tracked name, sorted.
func (s *Store) Names() []string {
	s.mu.Lock()
	names := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		names = append(names, name)
	}
	s.mu.Unlock()

	sort.Strings(names)
	return names
}

// Len returns the number of tracked tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}
