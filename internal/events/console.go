package events

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
)

// DefaultTimeFormat matches the layout used for task timestamps on screen.
const DefaultTimeFormat = "2006-01-02 03:04:05 PM MST-0700"

// Console writes a human-readable line (or block, for alerts) per event.
type Console struct {
	mu         sync.Mutex
	w          io.Writer
	timeFormat string
	width      int
}

// NewConsole creates a Console writing to w. An empty timeFormat selects
// DefaultTimeFormat and a non-positive width selects 40.
func NewConsole(w io.Writer, timeFormat string, width int) *Console {
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}
	if width <= 0 {
		width = 40
	}
	return &Console{w: w, timeFormat: timeFormat, width: width}
}

// Emit prints e. Each event reaches w in a single Write.
func (c *Console) Emit(e Event) {
	var b bytes.Buffer

	switch e.Kind {
	case KindAdded:
		fmt.Fprintf(&b, "Added %q to the list.\n", e.TaskName)
	case KindRemoved:
		fmt.Fprintf(&b, "Removed %q from the list.\n", e.TaskName)
	case KindSnoozed:
		fmt.Fprintf(&b, "Snoozed %q.\n", e.TaskName)
	case KindAlerted:
		fmt.Fprintf(&b, "\nAlert: Task '%s' is due now!\n", e.TaskName)
		fmt.Fprintf(&b, "  Description: %s\n", e.Description)
		fmt.Fprintf(&b, "  Start:       %s\n", e.Start.Format(c.timeFormat))
		fmt.Fprintf(&b, "  Deadline:    %s\n", e.Deadline.Format(c.timeFormat))
		fmt.Fprintln(&b, strings.Repeat("-", c.width))
	case KindNotifyFailed:
		fmt.Fprintf(&b, "Warning: could not send notification for %q: %s\n", e.TaskName, e.Detail)
	default:
		fmt.Fprintf(&b, "%s %q\n", e.Kind, e.TaskName)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.w.Write(b.Bytes())
}

// SyncWriter serializes writes to an underlying writer so the shell and the
// monitor can share one terminal.
type SyncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSyncWriter wraps w.
func NewSyncWriter(w io.Writer) *SyncWriter {
	return &SyncWriter{w: w}
}

func (s *SyncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
