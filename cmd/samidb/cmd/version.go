package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	appcontext "github.com/agentstation/samidb/cmd/samidb/context"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(appCtx appcontext.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for samidb CLI.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "samidb version %s\n", appCtx.Version())
			fmt.Fprintf(w, "commit: %s\n", appCtx.Commit())
			fmt.Fprintf(w, "built: %s\n", appCtx.Date())
			fmt.Fprintf(w, "built by: %s\n", appCtx.BuiltBy())
			fmt.Fprintf(w, "go version: %s\n", runtime.Version())
			_, err := fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}
