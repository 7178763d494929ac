// Package monitor runs the background scan that alerts on due tasks and
// removes them from the store.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"duelist/internal/domain"
	"duelist/internal/errors"
	"duelist/internal/events"
	"duelist/internal/logging"
	"duelist/internal/notify"
)

const (
	DefaultInterval      = time.Second
	DefaultNotifyTimeout = 10 * time.Second
	DefaultAppName       = "duelist"
)

// TaskSource is the part of the task store the monitor needs.
type TaskSource interface {
	DueNames(now time.Time) []string
	// Claim removes the task if it is still due at now.
	Claim(name string, now time.Time) (domain.Task, bool)
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the time between scans.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithNotifyTimeout bounds each notification. Zero waits indefinitely.
func WithNotifyTimeout(d time.Duration) Option {
	return func(m *Monitor) {
		m.notifyTimeout = d
	}
}

// WithSink sets where alert events are emitted.
func WithSink(sink events.Sink) Option {
	return func(m *Monitor) {
		if sink != nil {
			m.sink = sink
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

// WithApp sets the application name and icon passed to the notifier.
func WithApp(name, icon string) Option {
	return func(m *Monitor) {
		if name != "" {
			m.appName = name
		}
		m.appIcon = icon
	}
}

// WithTimeFormat sets the layout used for the deadline in notification text.
func WithTimeFormat(layout string) Option {
	return func(m *Monitor) {
		if layout != "" {
			m.timeFormat = layout
		}
	}
}

// Monitor periodically alerts on and removes due tasks.
type Monitor struct {
	source        TaskSource
	notifier      notify.Notifier
	sink          events.Sink
	interval      time.Duration
	notifyTimeout time.Duration
	appName       string
	appIcon       string
	timeFormat    string
	now           func() time.Time

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New creates a Monitor over source. A nil notifier disables notifications.
func New(source TaskSource, notifier notify.Notifier, opts ...Option) *Monitor {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	m := &Monitor{
		source:        source,
		notifier:      notifier,
		sink:          events.Discard,
		interval:      DefaultInterval,
		notifyTimeout: DefaultNotifyTimeout,
		appName:       DefaultAppName,
		timeFormat:    events.DefaultTimeFormat,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start runs the scan loop in a new goroutine until ctx is done or Stop is
// called. Calling Start on a running monitor does nothing.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	stop := make(chan struct{})
	done := make(chan struct{})
	m.stop, m.done = stop, done
	m.mu.Unlock()

	go func() {
		defer close(done)
		m.loop(ctx, stop)

		m.mu.Lock()
		if m.done == done {
			m.running = false
		}
		m.mu.Unlock()
	}()
}

// Stop ends the loop started by Start and waits for it to finish.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stop)
	done := m.done
	m.mu.Unlock()

	<-done
}

// IsRunning returns true while a loop started by Start is active.
func (m *Monitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Run scans on every interval until ctx is done and returns ctx.Err().
func (m *Monitor) Run(ctx context.Context) error {
	m.loop(ctx, nil)
	return ctx.Err()
}

func (m *Monitor) loop(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Tick performs one scan and returns how many tasks were alerted.
func (m *Monitor) Tick(ctx context.Context) int {
	now := m.now()
	alerted := 0
	for _, name := range m.source.DueNames(now) {
		task, ok := m.source.Claim(name, now)
		if !ok {
			// Removed or snoozed since the scan; nothing left to alert on.
			logging.Debugf("monitor: %q no longer due", name)
			continue
		}
		m.alert(ctx, task, now)
		alerted++
	}
	return alerted
}

func (m *Monitor) alert(ctx context.Context, task domain.Task, now time.Time) {
	n := notify.Notification{
		AppName: m.appName,
		AppIcon: m.appIcon,
		Title:   fmt.Sprintf("Task Due: %s", task.DisplayName()),
		Message: fmt.Sprintf("Description: %s\nDeadline: %s", task.Description, task.Deadline.Format(m.timeFormat)),
	}

	if err := m.deliver(ctx, n); err != nil {
		logging.Debugf("monitor: %v", errors.NewNotificationError(task.Name, err))
		failed := events.New(events.KindNotifyFailed, task, now)
		failed.Detail = err.Error()
		m.sink.Emit(failed)
	}

	m.sink.Emit(events.New(events.KindAlerted, task, now))
}

// deliver sends n, converting a notifier panic into an error.
func (m *Monitor) deliver(ctx context.Context, n notify.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
	}()

	if m.notifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.notifyTimeout)
		defer cancel()
	}
	return m.notifier.Notify(ctx, n)
}
