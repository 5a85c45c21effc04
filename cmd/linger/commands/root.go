// Package commands implements the CLI commands for linger.
package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/linger/internal/adapters/watcher"
	"go.trai.ch/linger/internal/app"
	"go.trai.ch/linger/internal/build"
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/core/ports"
)

// Application represents the application logic interface.
type Application interface {
	Analyze(ctx context.Context, req app.AnalyzeRequest) (*domain.Analysis, error)
	Watch(ctx context.Context, w ports.Watcher, opts app.WatchOptions, report func(app.WatchResult)) error
}

// jsonLogger is implemented by loggers that can switch to JSON output.
type jsonLogger interface {
	SetJSON(enable bool)
}

// CLI represents the command line interface for linger.
type CLI struct {
	app        Application
	logger     ports.Logger
	metrics    http.Handler
	newWatcher func() (ports.Watcher, error)
	stdin      io.Reader
	rootCmd    *cobra.Command
}

// Option configures a CLI.
type Option func(*CLI)

// WithMetricsHandler sets the handler served by watch --metrics-addr.
func WithMetricsHandler(h http.Handler) Option {
	return func(c *CLI) {
		c.metrics = h
	}
}

// WithWatcherFactory replaces the file system watcher used by watch.
func WithWatcherFactory(f func() (ports.Watcher, error)) Option {
	return func(c *CLI) {
		c.newWatcher = f
	}
}

// WithInput sets the stream read by mcp and by analyze --buffer -.
func WithInput(r io.Reader) Option {
	return func(c *CLI) {
		c.stdin = r
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, logger ports.Logger, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "linger",
		Short:         "Coordinated golangci-lint runs for editors and agents",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if l, ok := logger.(jsonLogger); ok && jsonLogs {
			l.SetJSON(true)
		}
	}

	c := &CLI{
		app:     a,
		logger:  logger,
		stdin:   os.Stdin,
		rootCmd: rootCmd,
	}
	c.newWatcher = func() (ports.Watcher, error) {
		return watcher.NewWatcher(c.logger)
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.AddCommand(c.newAnalyzeCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newMCPCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
