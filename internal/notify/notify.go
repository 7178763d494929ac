// Package notify delivers due-task alerts to the user outside the terminal.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Notification is a single alert.
type Notification struct {
	AppName string
	AppIcon string
	Title   string
	Message string
}

// Notifier delivers notifications. Notify may block; callers pass a context
// to bound how long they wait.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification) error

// Notify calls f(ctx, n).
func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Nop accepts every notification and does nothing.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(context.Context, Notification) error { return nil }

type multi []Notifier

// Multi delivers to every notifier and joins their errors.
func Multi(notifiers ...Notifier) Notifier {
	var m multi
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}

func (m multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for i, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("notifier %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps every notification it receives. Err, when set, is returned
// from Notify after recording.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
	Err  error
}

// Notify implements Notifier.
func (r *Recorder) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.Err
}

// Sent returns a copy of the recorded notifications.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}
