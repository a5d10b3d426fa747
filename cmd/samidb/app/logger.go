package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/samidb/internal/config"
	"github.com/agentstation/samidb/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag or SAMIDB_LOG_LEVEL
//  2. -q/--quiet flag (shortcut for warn)
//  3. -v/--verbose flag (shortcut for debug)
//  4. Default (info)
func NewLogger(cfg *config.Config) zerolog.Logger {
	logConfig := loggingConfig(cfg)

	if _, err := logConfig.ResolveLevel(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using \"info\"\n", cfg.LogLevel)
	} else if cfg.LogLevel == "" && cfg.Verbose && cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
	}

	return logging.NewLoggerFromConfig(logConfig)
}

// loggingConfig maps the CLI configuration onto the logger configuration.
func loggingConfig(cfg *config.Config) *logging.Config {
	return &logging.Config{
		Level:   cfg.LogLevel,
		Verbose: cfg.Verbose,
		Quiet:   cfg.Quiet,
		Format:  cfg.LogFormat,
		Output:  cfg.LogOutput,
	}
}
