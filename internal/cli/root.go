// Package cli wires configuration, logging, storage and the prompt around the
// application state and exposes every operation as a cobra subcommand.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tgienger/todo/internal/app"
	"github.com/tgienger/todo/internal/command"
	"github.com/tgienger/todo/internal/config"
	"github.com/tgienger/todo/internal/db"
	"github.com/tgienger/todo/internal/logging"
	"github.com/tgienger/todo/internal/ui/prompt"
	"github.com/tgienger/todo/internal/ui/render"
)

// Env is everything a command needs from the outside world
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Config is loaded from the environment when nil
	Config *config.Config
	// Confirmer overrides the configured prompt when set
	Confirmer prompt.Confirmer
	Now       func() time.Time
}

type operation struct {
	use     string
	aliases []string
	short   string
	example string
}

var operations = []operation{
	{use: "add <name>", short: "Add a task", example: `todo add "Buy milk"
todo add "Write report" -p Work -d "for Q3" --priority high --due 2026-11-01`},
	{use: "list", aliases: []string{"ls"}, short: "List projects and their tasks", example: "todo list\ntodo ls -p Work"},
	{use: "remove <id>", aliases: []string{"rm"}, short: "Remove a task", example: "todo rm 3"},
	{use: "modify <id> <name>", aliases: []string{"mod"}, short: "Replace a task's name and fields", example: `todo mod 3 "Write final report" --priority m`},
	{use: "show <id>", short: "Show every field of a task", example: "todo show 3"},
	{use: "complete <id>", aliases: []string{"done"}, short: "Mark a task as complete", example: "todo done 3"},
	{use: "project <name>", short: "Create a project", example: "todo project Work"},
	{use: "remove-project <name>", aliases: []string{"rmp"}, short: "Remove a project", example: "todo rmp Work -f"},
}

// NewRootCmd builds the command tree for env
func NewRootCmd(env *Env, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "A local task manager",
		Long: `todo keeps projects and tasks in a local SQLite database.

Flags understood by the task commands:
  -p, --project <name>       target project
  -d, --description <text>   task description
      --priority <level>     low|l, medium|m, high|h
      --due <YYYY-MM-DD>     due date
  -f, --force                remove a project together with its tasks`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(env.Stdin)
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	for _, op := range operations {
		root.AddCommand(newOperationCmd(env, op))
	}
	return root
}

func newOperationCmd(env *Env, op operation) *cobra.Command {
	return &cobra.Command{
		Use:     op.use,
		Aliases: op.aliases,
		Short:   op.short,
		Example: op.example,
		// the command parser owns the flag grammar
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && (args[0] == "-h" || args[0] == "--help") {
				return cmd.Help()
			}
			argv := append([]string{cmd.Root().Name(), cmd.Name()}, args...)
			return run(env, argv)
		},
	}
}

// run executes one parsed command against freshly loaded state
func run(env *Env, argv []string) error {
	cfg := env.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
	}
	logger := logging.New(env.Stderr, cfg.LogLevel, cfg.LogFormat)

	cmd, err := command.Parse(argv)
	if err != nil {
		return err
	}

	confirmer := env.Confirmer
	if confirmer == nil {
		if confirmer, err = prompt.New(cfg.Prompt, env.Stdin, env.Stdout); err != nil {
			return err
		}
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer database.Close()
	logger.Debug("opened database", "path", database.Path(), "config", cfg.File)

	state, err := app.Load(database, app.Options{
		Confirmer: confirmer,
		Out:       env.Stdout,
		Logger:    logger,
		Now:       env.Now,
	})
	if err != nil {
		return err
	}

	if err := state.Dispatch(cmd); err != nil {
		logger.Debug("command failed", "op", cmd.Op, "kind", app.KindOf(err))
		return err
	}
	return nil
}

// Execute runs the CLI against the process environment
func Execute(version string) error {
	env := &Env{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	if err := NewRootCmd(env, version).Execute(); err != nil {
		render.New(os.Stderr).Error(err)
		return err
	}
	return nil
}
