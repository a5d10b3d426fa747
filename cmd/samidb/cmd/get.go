package cmd

import (
	"github.com/spf13/cobra"

	appcontext "github.com/agentstation/samidb/cmd/samidb/context"
	"github.com/agentstation/samidb/internal/cmd/output"
)

// NewGetCommand creates the get command.
func NewGetCommand(appCtx appcontext.Context) *cobra.Command {
	return &cobra.Command{
		Use:     "get <name> [subtype]",
		GroupID: GroupCore,
		Short:   "Request an endpoint and print the result",
		Long: `Get resolves a named endpoint from the default and custom endpoints,
requests it and prints the returned media URL. When the response carries no
url field, the raw body is printed instead.`,
		Args: cobra.RangeArgs(1, 2),
		Example: `  samidb get img hug         # Random hug gif
  samidb get img hug -o json # Full result as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := appCtx.Client(ctx)
			if err != nil {
				return err
			}

			res, err := client.Get(ctx, args[0], args[1:]...)
			if err != nil {
				return err
			}

			appCtx.Logger().Debug().
				Str("endpoint", args[0]).
				Int("status", res.StatusCode).
				Msg("Request complete")

			return writeResult(cmd, appCtx, output.ResultToData(res), res.String())
		},
	}
}
