// Package catalog retrieves the descriptor listing published by the API.
package catalog

import (
	"context"

	"github.com/agentstation/samidb/internal/transport"
	"github.com/agentstation/samidb/pkg/errors"
	"github.com/agentstation/samidb/pkg/logging"
)

// errNotAList is returned when the catalog body is JSON null.
var errNotAList = errors.New("catalog is not a list of descriptors")

// Fetch downloads the catalog at url and returns its raw descriptors in order.
// The body must be a JSON array of strings.
func Fetch(ctx context.Context, tc *transport.Client, url string) ([]string, error) {
	resp, err := tc.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var descriptors []string
	if err := transport.DecodeResponse(resp, &descriptors); err != nil {
		return nil, err
	}
	if descriptors == nil {
		return nil, errors.WrapParse("json", url, errNotAList)
	}

	logging.FromContext(ctx).Debug().
		Str("url", url).
		Int("descriptors", len(descriptors)).
		Msg("Fetched endpoint catalog")

	return descriptors, nil
}
