package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/samidb"
	appcontext "github.com/agentstation/samidb/cmd/samidb/context"
)

// NewURLCommand creates the url command.
func NewURLCommand(appCtx appcontext.Context) *cobra.Command {
	return &cobra.Command{
		Use:     "url <name>",
		GroupID: GroupLocal,
		Short:   "Print the request URL for an endpoint name",
		Args:    cobra.ExactArgs(1),
		Example: `  samidb url img                          # http://api.samidb.xyz/v1/img
  samidb url img --api-version 2          # http://api.samidb.xyz/v2/img`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The URL does not depend on the registry, so skip the catalog fetch.
			client, err := appCtx.Client(cmd.Context(), samidb.WithIgnoreDefaultEndpoints(true))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), client.URL(args[0]))
			return err
		},
	}
}
