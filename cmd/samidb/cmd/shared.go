// Package cmd holds the samidb subcommands. Every constructor takes the
// application context so commands can be tested against a mock.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	appcontext "github.com/agentstation/samidb/cmd/samidb/context"
	"github.com/agentstation/samidb/internal/cmd/output"
)

// Command group IDs registered on the root command.
const (
	GroupCore  = "core"
	GroupLocal = "local"
)

// writeData renders data in the requested format, auto-detecting one when
// none was given.
func writeData(cmd *cobra.Command, appCtx appcontext.Context, data output.Data) error {
	format, err := output.ParseFormat(appCtx.OutputFormat())
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))
	return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
}

// writeResult prints the media URL (or raw body) of a result. An explicit
// output format prints the full result instead.
func writeResult(cmd *cobra.Command, appCtx appcontext.Context, data output.Data, plain string) error {
	if appCtx.OutputFormat() != "" {
		return writeData(cmd, appCtx, data)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), plain)
	return err
}
