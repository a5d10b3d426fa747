package samidb

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/agentstation/samidb/pkg/constants"
	"github.com/agentstation/samidb/pkg/errors"
)

// Config is the configuration of a Client. It is fixed once New returns.
type Config struct {
	// Version is the API version used in every request path.
	Version int `validate:"gte=1"`

	// APIURL is the base address of the API, without a trailing slash.
	APIURL string `validate:"required,url"`

	// IgnoreDefaultEndpoints skips fetching the remote endpoint catalog.
	IgnoreDefaultEndpoints bool

	// Endpoints maps a bucket name ("get" or "post") to raw descriptors.
	Endpoints map[string][]string

	// HTTPClient performs the requests. Nil uses an http.Client without a timeout.
	HTTPClient *http.Client `validate:"-"`

	// Logger receives debug logs. Nil uses logging.Default().
	Logger *zerolog.Logger `validate:"-"`

	// UserAgent is sent with every request.
	UserAgent string
}

// Option is a function that configures a Client
type Option func(*Config) error

// defaults returns the configuration used when no options are given.
func defaults() *Config {
	return &Config{
		Version:   constants.DefaultAPIVersion,
		APIURL:    constants.DefaultAPIURL,
		Endpoints: map[string][]string{},
		UserAgent: constants.DefaultUserAgent,
	}
}

// apply applies the options in order over the receiver.
func (c *Config) apply(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return err
		}
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	return nil
}

var configValidator = validator.New()

// validate checks the configuration and reports the first failing field.
func (c *Config) validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.NewValidationError(fe.Field(), fe.Value(), "failed '"+fe.Tag()+"' check")
	}
	return errors.WrapValidation("", err)
}

// clone returns a copy that does not share the endpoint map.
func (c *Config) clone() Config {
	out := *c
	out.Endpoints = make(map[string][]string, len(c.Endpoints))
	for bucket, descriptors := range c.Endpoints {
		out.Endpoints[bucket] = append([]string(nil), descriptors...)
	}
	return out
}

// WithVersion configures the API version.
func WithVersion(version int) Option {
	return func(c *Config) error {
		c.Version = version
		return nil
	}
}

// WithAPIURL configures the base address of the API.
func WithAPIURL(url string) Option {
	return func(c *Config) error {
		c.APIURL = url
		return nil
	}
}

// WithIgnoreDefaultEndpoints configures whether the remote endpoint catalog is skipped.
func WithIgnoreDefaultEndpoints(ignore bool) Option {
	return func(c *Config) error {
		c.IgnoreDefaultEndpoints = ignore
		return nil
	}
}

// WithEndpoints appends custom descriptors to a bucket. The bucket name is
// checked by New, so an unknown bucket fails construction before any request.
func WithEndpoints(bucket string, descriptors ...string) Option {
	return func(c *Config) error {
		if c.Endpoints == nil {
			c.Endpoints = map[string][]string{}
		}
		c.Endpoints[bucket] = append(c.Endpoints[bucket], descriptors...)
		return nil
	}
}

// WithHTTPClient configures the http client used for every request.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger configures the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithUserAgent configures the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Config) error {
		if userAgent == "" {
			return errors.NewValidationError("UserAgent", userAgent, "cannot be empty")
		}
		c.UserAgent = userAgent
		return nil
	}
}
