// Package samidb is a client for the SamiDB image and gif API.
//
// The API publishes its routes as endpoint descriptors. New loads them from
// the remote endpoint catalog (unless disabled) together with any custom
// descriptors, and only returns once the registry is complete. Requests are
// then resolved by logical endpoint name and dispatched with the verb the
// descriptor declares.
//
// Example usage:
//
//	client, err := samidb.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Random hug gif
//	res, err := client.Reaction(ctx, samidb.Hug)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.URL)
//
//	// Same request through the generic call
//	res, err = client.Get(ctx, "img", "hug")
//
//	// Only custom endpoints, no catalog request
//	client, err = samidb.New(ctx,
//	    samidb.WithIgnoreDefaultEndpoints(true),
//	    samidb.WithEndpoints("get", "GET,OPTIONS,HEAD/foo"),
//	)
package samidb

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/agentstation/samidb/internal/catalog"
	"github.com/agentstation/samidb/internal/transport"
	"github.com/agentstation/samidb/pkg/constants"
	"github.com/agentstation/samidb/pkg/endpoint"
	"github.com/agentstation/samidb/pkg/errors"
	"github.com/agentstation/samidb/pkg/logging"
)

// Compile-time interface check.
var _ fmt.Stringer = (*Client)(nil)

// Client resolves endpoint names against its registry and performs the calls.
// A Client is immutable once New returns and safe for concurrent use.
type Client struct {
	config    Config
	registry  *Registry
	transport *transport.Client
	logger    *zerolog.Logger
}

// New creates a ready Client. Unless default endpoints are ignored it fetches
// the endpoint catalog before returning, so Get never races the catalog.
//
// Errors:
//   - *errors.ConfigError when an option or the resulting configuration is invalid
//   - *errors.UnknownEndpointTypeError when custom endpoints use a bucket other
//     than get or post; reported before any request is made
//   - *errors.CatalogError when the catalog cannot be fetched or understood
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaults()
	if err := cfg.apply(opts...); err != nil {
		return nil, errors.NewConfigError("client", "invalid option", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.NewConfigError("client", "invalid configuration", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	c := &Client{
		config:    cfg.clone(),
		registry:  &Registry{},
		transport: transport.New(cfg.HTTPClient, cfg.UserAgent),
		logger:    logger,
	}

	custom, err := parseCustomEndpoints(c.config.Endpoints)
	if err != nil {
		return nil, err
	}

	ctx = logging.WithDefaultLogger(ctx, logger)
	log := logging.FromContext(ctx)

	if !c.config.IgnoreDefaultEndpoints {
		if err := c.loadCatalog(ctx); err != nil {
			return nil, err
		}
		log.Debug().Int("endpoints", c.registry.Len()).Msg("Loaded default endpoints")
	}

	for _, bucket := range constants.Buckets {
		if err := c.registry.add(bucket, custom[bucket]...); err != nil {
			return nil, err
		}
		if n := len(custom[bucket]); n > 0 {
			log.Debug().Str("bucket", bucket).Int("endpoints", n).Msg("Added custom endpoints")
		}
	}

	return c, nil
}

// parseCustomEndpoints validates bucket names and parses each descriptor.
// Buckets are checked in sorted order so the reported bucket is stable.
func parseCustomEndpoints(raw map[string][]string) (map[string][]endpoint.Endpoint, error) {
	buckets := make([]string, 0, len(raw))
	for bucket := range raw {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)

	parsed := make(map[string][]endpoint.Endpoint, len(raw))
	for _, bucket := range buckets {
		if bucket != constants.BucketGet && bucket != constants.BucketPost {
			return nil, errors.NewUnknownEndpointTypeError(bucket)
		}
		for _, d := range raw[bucket] {
			parsed[bucket] = append(parsed[bucket], endpoint.Parse(d))
		}
	}
	return parsed, nil
}

// loadCatalog fetches the default descriptors into the registry. Every
// failure is reported as the same *errors.CatalogError.
func (c *Client) loadCatalog(ctx context.Context) error {
	url := c.URL(constants.CatalogEndpoint)

	descriptors, err := catalog.Fetch(ctx, c.transport, url)
	if err == nil {
		err = c.registry.addDescriptors(descriptors)
	}
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("url", url).Msg("Default endpoint retrieval failed")
		return errors.NewCatalogError(url, err)
	}
	return nil
}

// URL returns the address of a named endpoint: {APIURL}/v{Version}/{name}.
// The name is not checked against the registry.
func (c *Client) URL(name string) string {
	return fmt.Sprintf("%s/v%d/%s", c.config.APIURL, c.config.Version, name)
}

// Get calls the endpoint registered under name, appending "/{subtype}" when a
// non-empty subtype is given. An empty subtype requests the bare endpoint
// URL with no trailing "/", the same as passing none. Further subtypes are
// ignored. The method comes from the endpoint's descriptor.
//
// When the response is a JSON object with a "url" string the result carries
// it in URL; the raw body is always kept. Transport errors are returned
// unchanged and non-2xx responses return *errors.APIError. An unregistered
// name returns *errors.UnknownEndpointError without making a request.
func (c *Client) Get(ctx context.Context, name string, subtype ...string) (*Result, error) {
	e, ok := c.registry.Lookup(name, c.config.Version)
	if !ok {
		return nil, errors.NewUnknownEndpointError(name, c.config.Version)
	}

	ctx = logging.WithDefaultLogger(ctx, c.logger)
	ctx = logging.WithEndpoint(ctx, name)

	target := c.URL(name)
	if len(subtype) > 0 && subtype[0] != "" {
		target += "/" + subtype[0]
		ctx = logging.WithSubtype(ctx, subtype[0])
	}

	resp, err := c.transport.Do(ctx, e.Method(), target)
	if err != nil {
		return nil, err
	}

	payload, err := transport.NewPayload(resp)
	if err != nil {
		return nil, err
	}

	return &Result{
		URL:         payload.URL,
		Body:        payload.Body,
		ContentType: payload.ContentType,
		StatusCode:  payload.StatusCode,
	}, nil
}

// Registry returns the endpoint registry.
func (c *Client) Registry() *Registry {
	return c.registry
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.config.clone()
}

// String returns a fixed tag identifying the client.
func (c *Client) String() string {
	return constants.ClientTag
}
