package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	appcontext "github.com/agentstation/samidb/cmd/samidb/context"
	"github.com/agentstation/samidb/internal/cmd/output"
	"github.com/agentstation/samidb/internal/config"
	"github.com/agentstation/samidb/internal/matcher"
	"github.com/agentstation/samidb/pkg/constants"
	"github.com/agentstation/samidb/pkg/endpoint"
	"github.com/agentstation/samidb/pkg/errors"
)

// endpointsFlags holds the flags of the endpoints command.
type endpointsFlags struct {
	bucket string
	match  string
	save   string
}

// NewEndpointsCommand creates the endpoints command.
func NewEndpointsCommand(appCtx appcontext.Context) *cobra.Command {
	flags := &endpointsFlags{}

	cmd := &cobra.Command{
		Use:     "endpoints",
		GroupID: GroupCore,
		Short:   "List the registered endpoints",
		Long: `Endpoints lists every endpoint the client can resolve, in lookup order:
the get bucket first, then the post bucket. Within a bucket the default
endpoints come before custom ones.`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		Example: `  samidb endpoints                        # Table of all endpoints
  samidb endpoints --bucket post -o json  # Only the post bucket
  samidb endpoints --match '/v1/*'        # Glob on the path
  samidb endpoints --match 'hug|pat'      # Regex on path or subtype
  samidb endpoints --save endpoints.yaml  # Write an endpoints file`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listEndpoints(cmd, appCtx, flags)
		},
	}

	cmd.Flags().StringVar(&flags.bucket, "bucket", "", "only list one bucket: get or post")
	cmd.Flags().StringVar(&flags.match, "match", "", "only list endpoints whose path or a subtype matches a glob or regex")
	cmd.Flags().StringVar(&flags.save, "save", "", "write the endpoints to an endpoints file instead of printing them")

	return cmd
}

func listEndpoints(cmd *cobra.Command, appCtx appcontext.Context, flags *endpointsFlags) error {
	buckets := constants.Buckets
	if flags.bucket != "" {
		bucket := strings.ToLower(flags.bucket)
		if bucket != constants.BucketGet && bucket != constants.BucketPost {
			return errors.NewUnknownEndpointTypeError(flags.bucket)
		}
		buckets = []string{bucket}
	}

	client, err := appCtx.Client(cmd.Context())
	if err != nil {
		return err
	}
	registry := client.Registry()

	// Endpoints stay keyed by the bucket they were filed under, which may
	// differ from the verb in their descriptor.
	grouped := make(map[string][]endpoint.Endpoint, len(buckets))
	var eps []endpoint.Endpoint
	for _, bucket := range buckets {
		list := registry.Bucket(bucket)
		if flags.match != "" {
			if list, err = filterEndpoints(list, flags.match); err != nil {
				return err
			}
		}
		grouped[bucket] = list
		eps = append(eps, list...)
	}

	if flags.save != "" {
		return saveEndpoints(cmd, appCtx, flags.save, grouped)
	}

	return writeData(cmd, appCtx, output.EndpointsToData(eps))
}

// saveEndpoints writes endpoints in descriptor form under the bucket that holds them.
func saveEndpoints(cmd *cobra.Command, appCtx appcontext.Context, path string, grouped map[string][]endpoint.Endpoint) error {
	descriptors := make(map[string][]string, len(grouped))
	count := 0
	for bucket, eps := range grouped {
		if len(eps) == 0 {
			continue
		}
		for _, e := range eps {
			descriptors[bucket] = append(descriptors[bucket], e.Descriptor())
		}
		count += len(eps)
	}

	if err := config.WriteEndpointsFile(path, descriptors); err != nil {
		return err
	}

	appCtx.Logger().Info().Str("path", path).Int("count", count).Msg("Saved endpoints")
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Saved %d endpoints to %s\n", count, path)
	return err
}

// filterEndpoints keeps endpoints whose path or one of whose subtypes matches pattern.
func filterEndpoints(eps []endpoint.Endpoint, pattern string) ([]endpoint.Endpoint, error) {
	m, err := matcher.New(matcher.Auto, pattern)
	if err != nil {
		return nil, err
	}

	filtered := make([]endpoint.Endpoint, 0, len(eps))
	for _, e := range eps {
		if m.Match(e.URL) || m.MatchAny(e.SubtypeNames()...) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
