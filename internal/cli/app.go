package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"duelist/internal/config"
	"duelist/internal/repository/sqlite"
	"duelist/internal/store"
	"duelist/internal/validation"
)

// Prompt is printed before each command line.
const Prompt = "# "

// errExit stops the read loop.
var errExit = errors.New("exit")

// Option configures an App.
type Option func(*App)

// WithInput sets where command lines are read from. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(a *App) {
		a.in = r
	}
}

// WithOutput sets where the shell writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// WithHistory enables the history command over repo.
func WithHistory(repo sqlite.Repository) Option {
	return func(a *App) {
		a.history = repo
	}
}

// App is the interactive shell over a task store.
type App struct {
	store     *store.Store
	history   sqlite.Repository
	config    *config.Config
	validator *validation.TaskValidator
	errors    *ErrorHandler
	registry  *CommandRegistry

	in  io.Reader
	out io.Writer
}

// NewApp creates a shell over s. A nil cfg selects the defaults.
func NewApp(s *store.Store, cfg *config.Config, opts ...Option) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	a := &App{
		store:     s,
		config:    cfg,
		validator: validation.NewTaskValidator(validation.NewValidatorWithConfig(cfg)),
		errors:    NewErrorHandler(),
		in:        os.Stdin,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.registry = a.newRegistry()
	return a
}

// Run prints the banner and help, then executes lines until exit, end of
// input or ctx is done.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "duelist")
	a.printHelp()

	scanner := bufio.NewScanner(a.in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(a.out, Prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read command: %w", err)
			}
			fmt.Fprintln(a.out)
			return nil
		}
		if a.Execute(ctx, scanner.Text()) {
			return nil
		}
	}
}

// Execute runs one command line and reports whether the shell should exit.
// Errors are printed and never end the shell.
func (a *App) Execute(ctx context.Context, line string) bool {
	parts := splitFields(line, 2)
	if len(parts) == 0 {
		return false
	}

	var args string
	if len(parts) > 1 {
		args = parts[1]
	}

	err := a.registry.Execute(ctx, strings.ToLower(parts[0]), args)
	switch {
	case err == nil:
		return false
	case errors.Is(err, errExit):
		return true
	default:
		fmt.Fprintln(a.out, a.errors.Message(err))
		return false
	}
}

// splitFields splits s on whitespace into at most n parts. The last part
// keeps its inner spacing.
func splitFields(s string, n int) []string {
	var parts []string
	s = strings.TrimSpace(s)
	for s != "" && len(parts) < n-1 {
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			break
		}
		parts = append(parts, s[:i])
		s = strings.TrimLeftFunc(s[i:], unicode.IsSpace)
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
