package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/samidb/cmd/samidb/cmd"
	"github.com/agentstation/samidb/internal/config"
	"github.com/agentstation/samidb/pkg/errors"
)

// Execute runs the samidb CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "samidb",
		Short:   "SamiDB API CLI",
		Version: a.version,
		Long: `samidb talks to the SamiDB image API. It loads the endpoint catalog
published by the API, merges any custom endpoints from the config file, and
resolves endpoint names to request URLs.

Custom endpoints are descriptors such as 'GET,OPTIONS,HEAD/img/<hug,pat>'
listed per bucket (get or post) under the endpoints key of ~/.samidb.yaml or
in a separate file given with --endpoints-file.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	if a.out != nil {
		rootCmd.SetOut(a.out)
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    cmd.GroupCore,
		Title: "API Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    cmd.GroupLocal,
		Title: "Local Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.samidb.yaml)")
	flags.String("api-url", "", "base address of the API (default "+a.config.APIURL+")")
	flags.Int("api-version", 0, "API version used in request paths")
	flags.Bool("ignore-default-endpoints", false, "skip loading the endpoint catalog from the API")
	flags.String("endpoints-file", "", "YAML file with custom endpoints per bucket")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.StringP("format", "o", "", "output format: table, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("samidb {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the
// configuration with the parsed flags taking precedence.
func (a *App) setupCommand(c *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.Flags())
	if err != nil {
		return errors.WrapResource("load", "config", "", err)
	}
	a.setConfig(cfg)

	if !a.fixedLogger {
		logger := NewLogger(cfg)
		a.logger = &logger
	}

	a.logger.Debug().
		Str("config_file", cfg.ConfigFile).
		Str("api_url", cfg.APIURL).
		Int("api_version", cfg.APIVersion).
		Msg("Configuration loaded")

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// API commands
	rootCmd.AddCommand(cmd.NewGetCommand(a))
	rootCmd.AddCommand(cmd.NewReactionCommand(a))
	rootCmd.AddCommand(cmd.NewEndpointsCommand(a))

	// Local commands
	rootCmd.AddCommand(cmd.NewURLCommand(a))
	rootCmd.AddCommand(cmd.NewReactionsCommand(a))
	rootCmd.AddCommand(cmd.NewParseCommand(a))

	// Utility commands
	rootCmd.AddCommand(cmd.NewVersionCommand(a))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		msg := err.Error() + "\n"
		if hint := errorHint(err); hint != "" {
			msg += hint + "\n"
		}
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(msg)
		os.Exit(1)
	}
}

// errorHint suggests a next step for errors the user can act on.
func errorHint(err error) string {
	switch {
	case errors.IsRateLimited(err):
		return "The API is rate limiting requests; wait a moment before retrying."
	case errors.IsServiceUnavailable(err):
		return "The API reported a server error; try again later."
	case errors.IsCatalogRetrieval(err):
		return "Use --ignore-default-endpoints with --endpoints-file to work without the endpoint catalog."
	case errors.IsUnknownEndpoint(err):
		return "Run 'samidb endpoints' to list the available endpoints."
	case errors.IsUnknownEndpointType(err):
		return "Custom endpoints must be listed under get or post."
	default:
		return ""
	}
}
