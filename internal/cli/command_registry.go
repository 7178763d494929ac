package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// errUnknownCommand is returned by Execute when no command or alias matches.
var errUnknownCommand = errors.New("unknown command")

// Command is one shell command. Run receives the raw text after the command word.
type Command struct {
	Usage   string
	Aliases []string
	Short   string
	Example string
	Run     func(ctx context.Context, args string) error
}

// Name returns the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// CommandRegistry manages the shell commands and resolves command words,
// aliases included, through a cobra command tree.
type CommandRegistry struct {
	commands []*Command
}

// NewCommandRegistry creates an empty registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(command *Command) {
	r.commands = append(r.commands, command)
}

// Commands returns the registered commands in registration order
func (r *CommandRegistry) Commands() []*Command {
	return r.commands
}

// Execute runs the command named word, or one of its aliases, with args.
// Flags are not interpreted; args reaches the command unchanged.
func (r *CommandRegistry) Execute(ctx context.Context, word, args string) error {
	root := r.tree()

	target, _, err := root.Find([]string{word})
	if err != nil || target == root {
		return errUnknownCommand
	}

	argv := []string{target.Name()}
	if args != "" {
		argv = append(argv, args)
	}
	root.SetArgs(argv)
	return root.ExecuteContext(ctx)
}

// tree builds a fresh cobra tree so no parse state carries over between lines.
func (r *CommandRegistry) tree() *cobra.Command {
	root := &cobra.Command{
		Use:           "duelist",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	for _, c := range r.commands {
		c := c
		sub := &cobra.Command{
			Use:                c.Usage,
			Aliases:            c.Aliases,
			Short:              c.Short,
			Example:            c.Example,
			Args:               cobra.ArbitraryArgs,
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.Run(cmd.Context(), strings.Join(args, " "))
			},
		}
		root.AddCommand(sub)
		if c.Name() == "help" {
			root.SetHelpCommand(sub)
		}
	}
	return root
}
