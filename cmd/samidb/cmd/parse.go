package cmd

import (
	"github.com/spf13/cobra"

	appcontext "github.com/agentstation/samidb/cmd/samidb/context"
	"github.com/agentstation/samidb/internal/cmd/output"
	"github.com/agentstation/samidb/pkg/endpoint"
)

// NewParseCommand creates the parse command.
func NewParseCommand(appCtx appcontext.Context) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "parse <descriptor>",
		GroupID: GroupLocal,
		Short:   "Parse an endpoint descriptor",
		Long: `Parse shows how a descriptor is interpreted: its type, path and subtypes.
Parsing is lenient by default and never fails; --strict rejects descriptors
with an unknown verb, a malformed path or empty subtypes.`,
		Args: cobra.ExactArgs(1),
		Example: `  samidb parse 'GET,OPTIONS,HEAD/img/<blush,bonk,boop>'
  samidb parse --strict 'FETCH/foo'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var e endpoint.Endpoint
			if strict {
				var err error
				if e, err = endpoint.ParseStrict(args[0]); err != nil {
					return err
				}
			} else {
				e = endpoint.Parse(args[0])
			}
			return writeData(cmd, appCtx, output.EndpointToData(e))
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "reject malformed descriptors")

	return cmd
}
