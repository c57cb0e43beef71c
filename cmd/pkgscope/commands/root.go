// Package commands implements the CLI commands for pkgscope.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pkgscope/internal/app"
	"go.trai.ch/pkgscope/internal/build"
	"go.trai.ch/pkgscope/internal/core/domain"
	"go.trai.ch/pkgscope/internal/core/ports"
)

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.Options) error
	PackageConfig(ctx context.Context, path string) (*domain.PackageConfig, error)
	ScopeTraces(ctx context.Context, locations []string) ([]domain.ScopeTrace, error)
}

// logSettings is implemented by loggers whose level and encoding can change at runtime.
type logSettings interface {
	SetLevel(level domain.LogLevel)
	SetJSON(enable bool)
}

// CLI represents the command line interface for pkgscope.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command

	format   string
	policy   string
	logLevel string
	jsonLogs bool
	eager    bool
}

// New creates a new CLI instance with the given app.
func New(a Application, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pkgscope",
		Short:         "Inspect package.json configuration and package scopes",
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

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.format, "format", "o", formatJSON, "Output format: json or yaml")
	flags.StringVar(&c.policy, "policy", "", "Integrity policy manifest; enables integrity checks")
	flags.StringVar(&c.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.BoolVar(&c.jsonLogs, "json-logs", false, "Write logs as JSON")
	flags.BoolVar(&c.eager, "eager", false, "Parse exports and imports when a manifest is read")

	rootCmd.PersistentPreRunE = c.setup

	rootCmd.AddCommand(c.newConfigCmd())
	rootCmd.AddCommand(c.newScopeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) setup(_ *cobra.Command, _ []string) error {
	if c.format != formatJSON && c.format != formatYAML {
		return domain.ErrUnknownOutputFormat
	}

	if ls, ok := c.logger.(logSettings); ok {
		ls.SetLevel(domain.ParseLogLevel(c.logLevel))
		ls.SetJSON(c.jsonLogs)
	}

	return c.app.Configure(app.Options{
		PolicyPath: c.policy,
		EagerParse: c.eager,
	})
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
