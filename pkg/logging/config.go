package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/samidb/pkg/constants"
	"github.com/agentstation/samidb/pkg/errors"
)

// Levels lists the accepted level names, most verbose first.
var Levels = []string{"trace", "debug", "info", "warn", "error"}

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum log level. When empty, Verbose and Quiet decide.
	Level string

	// Verbose lowers the level to debug.
	Verbose bool

	// Quiet raises the level to warn and wins over Verbose.
	Quiet bool

	// Format is the output format (json, console, auto).
	Format string

	// Output is where to write logs (stderr, stdout, discard, or file path).
	Output string
}

// ResolveLevel picks the effective level. An explicit Level wins, then
// Quiet, then Verbose, then info. An unknown Level resolves to info and
// is reported as a validation error.
func (c *Config) ResolveLevel() (zerolog.Level, error) {
	if c.Level != "" {
		level := strings.ToLower(c.Level)
		for _, known := range Levels {
			if level == known {
				parsed, _ := zerolog.ParseLevel(level)
				return parsed, nil
			}
		}
		return zerolog.InfoLevel, errors.NewValidationError("log_level", c.Level,
			"must be one of "+strings.Join(Levels, ", "))
	}

	switch {
	case c.Quiet:
		return zerolog.WarnLevel, nil
	case c.Verbose:
		return zerolog.DebugLevel, nil
	default:
		return zerolog.InfoLevel, nil
	}
}

// NewLoggerFromConfig creates a new logger from configuration.
// Debug and trace loggers also record the caller.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = &Config{}
	}

	level, _ := cfg.ResolveLevel()
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(getWriter(cfg)).
		Level(level).
		With().
		Timestamp().
		Logger()

	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger
}

// Configure updates the default logger with the given configuration.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// getWriter creates the appropriate writer based on configuration.
func getWriter(cfg *Config) io.Writer {
	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	case "discard", "none":
		output = io.Discard
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			output = os.Stderr
		} else {
			output = file
		}
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if output == os.Stderr && isatty() {
			format = "console"
		}
	}

	if format == "console" {
		return zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}
	return output
}

// addField adds a field to the logger context based on its type.
func addField(ctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return ctx.Str(key, v)
	case int:
		return ctx.Int(key, v)
	case []string:
		return ctx.Strs(key, v)
	default:
		return ctx.Interface(key, v)
	}
}
