package cli

import (
	"context"
	"fmt"
	"strings"

	"duelist/internal/duration"
)

// list prints every task sorted by deadline, then the current time.
func (a *App) list(context.Context, string) error {
	tasks := a.store.ListSorted()
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "The list is empty.")
		return nil
	}

	layout := a.config.Display.TimeFormat
	rule := strings.Repeat("-", a.config.Display.Width)
	now := a.store.Now()

	var b strings.Builder
	b.WriteString(rule + "\n")
	for _, task := range tasks {
		fmt.Fprintf(&b, "Task: %s\n", task.DisplayName())
		fmt.Fprintf(&b, "  Description:  %s\n", task.Description)
		fmt.Fprintf(&b, "  Start:        %s\n", task.Start.Format(layout))
		fmt.Fprintf(&b, "  Deadline:     %s\n", task.Deadline.Format(layout))
		fmt.Fprintf(&b, "  Elapsed:      %s\n", duration.Format(task.Elapsed(now)))
		fmt.Fprintf(&b, "  Time left:    %s\n", duration.Format(task.TimeLeft(now)))
		b.WriteString(rule + "\n")
	}
	fmt.Fprintf(&b, "  Current time: %s\n", now.Format(layout))

	fmt.Fprint(a.out, b.String())
	return nil
}
