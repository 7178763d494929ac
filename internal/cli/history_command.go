package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	apperrors "duelist/internal/errors"
	"duelist/internal/events"
	"duelist/internal/repository/sqlite"
)

const defaultHistoryCount = 10

// showHistory prints the newest journal events, oldest of them first.
func (a *App) showHistory(ctx context.Context, args string) error {
	opts, err := a.historyOptions(args)
	if err != nil {
		return err
	}
	if a.history == nil {
		fmt.Fprintln(a.out, "History is disabled. Set DL_HISTORY_ENABLED=true or pass --history to record events.")
		return nil
	}

	records, err := a.history.SearchEvents(ctx, opts)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		if opts.TaskName != "" {
			fmt.Fprintf(a.out, "No history recorded for %q.\n", opts.TaskName)
		} else {
			fmt.Fprintln(a.out, "No history recorded yet.")
		}
		return nil
	}

	var b strings.Builder
	for i := len(records) - 1; i >= 0; i-- {
		b.WriteString(formatHistoryLine(sqlite.FromRecord(records[i]), a.config.Display.TimeFormat))
	}
	fmt.Fprint(a.out, b.String())
	return nil
}

// historyOptions reads "[name] [count]". A lone number is taken as the count.
func (a *App) historyOptions(args string) (sqlite.SearchOptions, error) {
	opts := sqlite.SearchOptions{Limit: defaultHistoryCount}

	fields := strings.Fields(strings.ToLower(args))
	if len(fields) > 2 {
		return opts, apperrors.NewUsageError("Command takes at most a name and a count.")
	}

	if len(fields) == 2 || (len(fields) == 1 && !isNumber(fields[0])) {
		name, err := a.validator.GetValidTaskName(fields[0])
		if err != nil {
			return opts, err
		}
		opts.TaskName = name
		fields = fields[1:]
	}

	if len(fields) == 1 {
		count, err := a.validator.ParseHistoryLimit(fields[0], defaultHistoryCount)
		if err != nil {
			return opts, err
		}
		opts.Limit = count
	}
	return opts, nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func formatHistoryLine(e events.Event, layout string) string {
	line := fmt.Sprintf("%s  %-13s %s", e.At.Local().Format(layout), e.Kind, e.TaskName)
	if e.Detail != "" {
		line += " (" + e.Detail + ")"
	}
	return line + "\n"
}
