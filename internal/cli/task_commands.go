package cli

import (
	"context"
	"fmt"
	"strings"

	apperrors "duelist/internal/errors"
)

const clearScreen = "\033[H\033[2J"

const timeFormatHelp = `Time Format:
    - The time argument can be given in any order without spaces.
    - Use 'd' for days, 'h' for hours, 'm' for minutes, and 's' for seconds.
    - Examples: 2h30m, 1d5h, 10s, 2d7m, 2h`

func (a *App) newRegistry() *CommandRegistry {
	r := NewCommandRegistry()
	r.Register(&Command{
		Usage:   "add <name> <time> <description>",
		Aliases: []string{"create", "new"},
		Short:   "Add a new task with a specified time and description.",
		Example: "add dishes 5h30m wash the dishes",
		Run:     a.add,
	})
	r.Register(&Command{
		Usage:   "snooze <name> <time>",
		Aliases: []string{"delay"},
		Short:   "Snooze an existing task by a specified amount of time.",
		Example: "snooze chores 2h30m",
		Run:     a.snooze,
	})
	r.Register(&Command{
		Usage:   "remove <name>",
		Aliases: []string{"delete", "rm", "del"},
		Short:   "Remove a task from the list.",
		Example: "remove homework",
		Run:     a.remove,
	})
	r.Register(&Command{
		Usage:   "list",
		Aliases: []string{"ls", "show"},
		Short:   "List all tasks sorted by their due time.",
		Run:     a.list,
	})
	r.Register(&Command{
		Usage:   "export <csv|yaml>",
		Short:   "Write all tasks in CSV or YAML.",
		Example: "export yaml",
		Run:     a.export,
	})
	r.Register(&Command{
		Usage:   "history [name] [count]",
		Short:   "Show the most recent task events, optionally for one task, when history is enabled.",
		Example: "history dishes 20",
		Run:     a.showHistory,
	})
	r.Register(&Command{
		Usage:   "clear",
		Aliases: []string{"cls"},
		Short:   "Clears the console.",
		Run: func(context.Context, string) error {
			fmt.Fprint(a.out, clearScreen)
			return nil
		},
	})
	r.Register(&Command{
		Usage:   "help",
		Aliases: []string{"cmd", "cmds"},
		Short:   "Show this help message.",
		Run: func(context.Context, string) error {
			a.printHelp()
			return nil
		},
	})
	r.Register(&Command{
		Usage:   "exit",
		Aliases: []string{"quit"},
		Short:   "Exit the application.",
		Run: func(context.Context, string) error {
			fmt.Fprintln(a.out, "Exiting application.")
			return errExit
		},
	})
	return r
}

// add <name> <time> <description>
func (a *App) add(_ context.Context, args string) error {
	parts := splitFields(args, 3)
	if len(parts) < 3 {
		return apperrors.NewUsageError("Command must include a name, time, and description.")
	}

	name, err := a.validator.GetValidTaskName(strings.ToLower(parts[0]))
	if err != nil {
		return err
	}
	_, err = a.store.Add(name, parts[2], strings.ToLower(parts[1]))
	return err
}

// snooze <name> <time>
func (a *App) snooze(_ context.Context, args string) error {
	parts := splitFields(args, 2)
	if len(parts) < 2 {
		return apperrors.NewUsageError("Command must include a name and time.")
	}

	name, err := a.validator.GetValidTaskName(strings.ToLower(parts[0]))
	if err != nil {
		return err
	}
	_, err = a.store.Snooze(name, strings.ToLower(parts[1]))
	return err
}

// remove <name>
func (a *App) remove(_ context.Context, args string) error {
	if strings.TrimSpace(args) == "" {
		return apperrors.NewUsageError("Command must include a name.")
	}

	name, err := a.validator.GetValidTaskName(strings.ToLower(args))
	if err != nil {
		return err
	}
	return a.store.Remove(name)
}

func (a *App) printHelp() {
	var b strings.Builder
	b.WriteString("\nAvailable commands:\n")
	for _, c := range a.registry.Commands() {
		fmt.Fprintf(&b, "    %s\n", c.Usage)
		if len(c.Aliases) > 0 {
			fmt.Fprintf(&b, "        Aliases: %s\n", strings.Join(c.Aliases, ", "))
		}
		fmt.Fprintf(&b, "        Description: %s\n", c.Short)
		if c.Example != "" {
			fmt.Fprintf(&b, "        Example: %s\n", c.Example)
		}
		b.WriteString("\n")
	}
	b.WriteString(timeFormatHelp)
	b.WriteString("\n")
	fmt.Fprintln(a.out, b.String())
}
