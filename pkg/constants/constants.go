// Package constants provides shared constants used throughout the samidb codebase.
// This includes API defaults, registry bucket names and descriptor conventions
// that should be consistent across the library and the CLI.
package constants

// API defaults
const (
	// DefaultAPIURL is the base address of the public SamiDB API
	DefaultAPIURL = "http://api.samidb.xyz"

	// DefaultAPIVersion is the API version used when none is configured
	DefaultAPIVersion = 1

	// CatalogEndpoint is the name of the endpoint listing the default descriptors
	CatalogEndpoint = "endpoints"

	// ImageEndpoint is the endpoint serving reaction images and gifs
	ImageEndpoint = "img"

	// ClientTag is the human readable tag returned by Client.String
	ClientTag = "[SamiDBApi]"

	// DefaultUserAgent is sent with every request unless overridden
	DefaultUserAgent = "samidb-go"
)

// Registry buckets
const (
	// BucketGet holds endpoints reachable with GET
	BucketGet = "get"

	// BucketPost holds endpoints reachable with POST
	BucketPost = "post"
)

// Buckets lists the registry buckets in lookup order.
var Buckets = []string{BucketGet, BucketPost}

// Descriptor conventions
const (
	// VerbListSuffix follows the primary verb in every catalog descriptor
	VerbListSuffix = ",OPTIONS,HEAD"

	// SubtypeSeparator terminates every parsed subtype
	SubtypeSeparator = "/"
)

// HTTP headers
const (
	// RequestIDHeader carries the per-request id
	RequestIDHeader = "X-Request-ID"
)

// CLI configuration
const (
	// EnvPrefix prefixes every environment variable read by the CLI
	EnvPrefix = "SAMIDB"

	// ConfigName is the config file name searched in $HOME and the working directory
	ConfigName = ".samidb"

	// ConfigType is the format of the config file
	ConfigType = "yaml"
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
