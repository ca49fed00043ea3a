// Package cli provides the command-line interface of the automata tools.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"

	"github.com/geange/automata/internal/config"
	"github.com/geange/automata/internal/logging"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	opts   globalOptions
	config *config.Config
	logger *bolt.Logger
}

// globalOptions holds the flags every command accepts.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "automata",
		Short: "Determinize, minimize and compare finite automata",
		Long: `automata reads finite automata from text or YAML files and transforms them.

An NFA, with or without epsilon transitions, is turned into an equivalent DFA by
subset construction; a DFA is minimized with the table filling algorithm.

Text files hold one transition per line:
  >A|0|A,B     '>' marks the initial state
  *B|1|A       '*' marks a final state
  B|ε|C        an empty symbol or ε is an epsilon transition`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	flags := app.root.PersistentFlags()
	flags.StringVarP(&app.opts.configPath, "config", "c", "", "Path to a YAML configuration file")
	flags.StringVar(&app.opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&app.opts.logFormat, "log-format", "", "Log format (console, json)")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newMinimizeCmd(),
		app.newDeterminizeCmd(),
		app.newRemoveEpsilonCmd(),
		app.newAcceptsCmd(),
		app.newEquivalentCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// setup loads the configuration, applies flag overrides and creates the logger.
func (a *App) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.opts.configPath != "" {
		loaded, err := config.NewLoader().LoadFile(a.opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.opts.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.opts.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.config = cfg
	a.logger = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: a.stderr,
	})
	return nil
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "automata version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}
