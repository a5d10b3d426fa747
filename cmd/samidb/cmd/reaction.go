package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/samidb"
	appcontext "github.com/agentstation/samidb/cmd/samidb/context"
	"github.com/agentstation/samidb/internal/cmd/output"
	"github.com/agentstation/samidb/pkg/errors"
)

// NewReactionCommand creates the reaction command.
func NewReactionCommand(appCtx appcontext.Context) *cobra.Command {
	return &cobra.Command{
		Use:       "reaction <name>",
		GroupID:   GroupCore,
		Short:     "Print a random reaction image",
		Long:      "Reaction requests a random image for one of the known reactions. Run 'samidb reactions' for the list.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: reactionNames(),
		Example: `  samidb reaction hug
  samidb reaction corn -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := samidb.ParseReaction(args[0])
			if !ok {
				return &errors.UnknownEndpointError{Resource: "reaction", Name: args[0]}
			}

			ctx := cmd.Context()
			client, err := appCtx.Client(ctx)
			if err != nil {
				return err
			}

			res, err := client.Reaction(ctx, r)
			if err != nil {
				return err
			}
			return writeResult(cmd, appCtx, output.ResultToData(res), res.String())
		},
	}
}

// NewReactionsCommand creates the reactions command.
func NewReactionsCommand(appCtx appcontext.Context) *cobra.Command {
	return &cobra.Command{
		Use:     "reactions",
		GroupID: GroupLocal,
		Short:   "List the known reactions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeData(cmd, appCtx, output.ReactionsToData(samidb.Reactions()))
		},
	}
}

// reactionNames lists reaction names for shell completion.
func reactionNames() []string {
	reactions := samidb.Reactions()
	names := make([]string, len(reactions))
	for i, r := range reactions {
		names[i] = r.String()
	}
	return names
}
