package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"duelist/internal/config"
)

// RunFunc starts the program once configuration is loaded.
type RunFunc func(ctx context.Context, cfg *config.Config) error

// RootCommand is the duelist process command
type RootCommand struct {
	cmd       *cobra.Command
	loader    *config.Loader
	overrides config.ConfigOverrides
	run       RunFunc
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, run RunFunc) *RootCommand {
	root := &RootCommand{
		loader: loader,
		run:    run,
	}

	root.cmd = &cobra.Command{
		Use:   "duelist",
		Short: "An interactive task list that alerts when tasks are due",
		Long: `duelist keeps a list of named tasks with deadlines and shows a desktop
notification once when each one falls due. Tasks are managed from an
interactive shell; type 'help' at the prompt for the command list.

EXAMPLES:
  duelist                                  # Start the shell with defaults
  duelist --history                        # Also record events in ~/.duelist/history.db
  duelist --no-notify --interval 5s        # Console alerts only, scanning every 5s

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Config file:
    DL_CONFIG                              YAML config file (default: ~/.duelist/config.yaml)

  Monitor Configuration:
    DL_MONITOR_INTERVAL                    Scan interval (default: 1s)
    DL_MONITOR_NOTIFY_TIMEOUT              Notification timeout (default: 10s)

  Notification Configuration:
    DL_NOTIFY_ENABLED                      Desktop notifications (default: true)
    DL_NOTIFY_APP_NAME                     Application name (default: duelist)
    DL_NOTIFY_APP_ICON                     Icon path (default: icon next to the binary)

  History Configuration:
    DL_HISTORY_ENABLED                     Record events (default: false)
    DL_HISTORY_DIR                         History directory (default: ~/.duelist)
    DL_HISTORY_FILENAME                    History filename (default: history.db)
    DL_HISTORY_RETENTION                   Drop older events at startup, e.g. 720h (default: keep all)

  Display Configuration:
    DL_DISPLAY_TIME_FORMAT                 Time layout (default: 2006-01-02 03:04:05 PM MST-0700)
    DL_DISPLAY_WIDTH                       Separator width (default: 40)

  DL_DEBUG                                 Print debug output to stderr`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			return root.run(cmd.Context(), cfg)
		},
	}

	root.addGlobalFlags()
	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs replaces os.Args[1:] as the command line.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects cobra's usage and help output.
func (r *RootCommand) SetOutput(w io.Writer) {
	r.cmd.SetOut(w)
	r.cmd.SetErr(w)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "YAML config file (overrides DL_CONFIG)")

	// Monitor configuration
	flags.Duration("interval", 0, "Scan interval (overrides DL_MONITOR_INTERVAL)")
	flags.Duration("notify-timeout", 0, "Notification timeout (overrides DL_MONITOR_NOTIFY_TIMEOUT)")

	// Notification configuration
	flags.Bool("no-notify", false, "Disable desktop notifications (overrides DL_NOTIFY_ENABLED)")
	flags.String("app-name", "", "Notification application name (overrides DL_NOTIFY_APP_NAME)")
	flags.String("app-icon", "", "Notification icon path (overrides DL_NOTIFY_APP_ICON)")

	// History configuration
	flags.Bool("history", false, "Record events in the history database (overrides DL_HISTORY_ENABLED)")
	flags.String("history-dir", "", "History directory (overrides DL_HISTORY_DIR)")
	flags.String("history-file", "", "History filename (overrides DL_HISTORY_FILENAME)")
	flags.Duration("history-retention", 0, "Drop history older than this at startup (overrides DL_HISTORY_RETENTION)")

	// Display configuration
	flags.String("time-format", "", "Time layout (overrides DL_DISPLAY_TIME_FORMAT)")
	flags.Int("width", 0, "Separator width (overrides DL_DISPLAY_WIDTH)")

	// Application configuration
	flags.BoolP("verbose", "v", false, "Enable debug output (overrides DL_APP_VERBOSE)")
}

// loadConfig loads configuration with the flags that were set applied last
func (r *RootCommand) loadConfig() (*config.Config, error) {
	flags := r.cmd.PersistentFlags()

	if flags.Changed("config") {
		path, _ := flags.GetString("config")
		r.loader.SetConfigFile(path)
	}

	if flags.Changed("interval") {
		v, _ := flags.GetDuration("interval")
		r.overrides.Interval = &v
	}
	if flags.Changed("notify-timeout") {
		v, _ := flags.GetDuration("notify-timeout")
		r.overrides.NotifyTimeout = &v
	}
	if flags.Changed("no-notify") {
		v, _ := flags.GetBool("no-notify")
		enabled := !v
		r.overrides.NotifyEnabled = &enabled
	}
	if flags.Changed("app-name") {
		v, _ := flags.GetString("app-name")
		r.overrides.AppName = &v
	}
	if flags.Changed("app-icon") {
		v, _ := flags.GetString("app-icon")
		r.overrides.AppIcon = &v
	}
	if flags.Changed("history") {
		v, _ := flags.GetBool("history")
		r.overrides.HistoryEnabled = &v
	}
	if flags.Changed("history-dir") {
		v, _ := flags.GetString("history-dir")
		r.overrides.HistoryDir = &v
	}
	if flags.Changed("history-file") {
		v, _ := flags.GetString("history-file")
		r.overrides.HistoryFile = &v
	}
	if flags.Changed("history-retention") {
		v, _ := flags.GetDuration("history-retention")
		r.overrides.Retention = &v
	}
	if flags.Changed("time-format") {
		v, _ := flags.GetString("time-format")
		r.overrides.TimeFormat = &v
	}
	if flags.Changed("width") {
		v, _ := flags.GetInt("width")
		r.overrides.Width = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		r.overrides.Verbose = &v
	}

	return r.loader.LoadWithOverrides(&r.overrides)
}
