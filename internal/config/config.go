// Package config loads the samidb CLI configuration.
//
// Values are resolved in order of precedence:
//  1. Command-line flags
//  2. Environment variables (SAMIDB_ prefix)
//  3. .env and .env.local files
//  4. Config file (~/.samidb.yaml or ./.samidb.yaml)
//  5. Defaults
//
// Custom endpoints may also be kept in a separate YAML file named by
// endpoints_file; its descriptors are appended after those of the config file.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/samidb/pkg/constants"
	"github.com/agentstation/samidb/pkg/errors"
)

// Keys understood in the config file and as SAMIDB_* environment variables.
const (
	KeyAPIURL                 = "api_url"
	KeyAPIVersion             = "api_version"
	KeyIgnoreDefaultEndpoints = "ignore_default_endpoints"
	KeyEndpoints              = "endpoints"
	KeyEndpointsFile          = "endpoints_file"
	KeyVerbose                = "verbose"
	KeyQuiet                  = "quiet"
	KeyOutput                 = "output"
	KeyLogLevel               = "log_level"
	KeyLogFormat              = "log_format"
	KeyLogOutput              = "log_output"
)

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"api-url":                  KeyAPIURL,
	"api-version":              KeyAPIVersion,
	"ignore-default-endpoints": KeyIgnoreDefaultEndpoints,
	"endpoints-file":           KeyEndpointsFile,
	"verbose":                  KeyVerbose,
	"quiet":                    KeyQuiet,
	"format":                   KeyOutput,
	"log-level":                KeyLogLevel,
}

// Config holds the resolved CLI configuration.
type Config struct {
	// ConfigFile is the config file that was read, if any.
	ConfigFile string

	// Client configuration
	APIURL                 string
	APIVersion             int
	IgnoreDefaultEndpoints bool
	Endpoints              map[string][]string
	EndpointsFile          string

	// Output
	Verbose bool
	Quiet   bool
	Output  string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Load resolves the configuration. When flags is non-nil, every flag known
// to flagKeys is bound so that an explicitly set flag wins over all other
// sources, and a "config" flag names the config file to read.
func Load(flags *pflag.FlagSet) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	configFile := ""
	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType(constants.ConfigType)
		v.SetConfigName(constants.ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is only an error when it was asked for explicitly.
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "could not read config file", err)
		}
	}

	cfg := &Config{
		ConfigFile: v.ConfigFileUsed(),

		APIURL:                 v.GetString(KeyAPIURL),
		APIVersion:             v.GetInt(KeyAPIVersion),
		IgnoreDefaultEndpoints: v.GetBool(KeyIgnoreDefaultEndpoints),
		Endpoints:              normalizeEndpoints(v.GetStringMapStringSlice(KeyEndpoints)),
		EndpointsFile:          v.GetString(KeyEndpointsFile),

		Verbose: v.GetBool(KeyVerbose),
		Quiet:   v.GetBool(KeyQuiet),
		Output:  v.GetString(KeyOutput),

		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		LogOutput: v.GetString(KeyLogOutput),
	}

	if cfg.EndpointsFile != "" {
		extra, err := LoadEndpointsFile(cfg.EndpointsFile)
		if err != nil {
			return nil, err
		}
		cfg.Endpoints = MergeEndpoints(cfg.Endpoints, extra)
	}

	return cfg, nil
}

// setDefaults registers the values used when no other source sets a key.
func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIURL, constants.DefaultAPIURL)
	v.SetDefault(KeyAPIVersion, constants.DefaultAPIVersion)
	v.SetDefault(KeyIgnoreDefaultEndpoints, false)
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyLogOutput, "stderr")
}

// bindFlags binds the known flags present in the set.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.NewConfigError("flags", "could not bind flag "+name, err)
		}
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env; neither overrides the real environment.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// normalizeEndpoints lowercases bucket names and drops empty buckets.
func normalizeEndpoints(raw map[string][]string) map[string][]string {
	out := make(map[string][]string, len(raw))
	for bucket, descriptors := range raw {
		if len(descriptors) == 0 {
			continue
		}
		key := strings.ToLower(bucket)
		out[key] = append(out[key], descriptors...)
	}
	return out
}

// MergeEndpoints returns a new map holding the descriptors of base followed
// by those of extra, per bucket.
func MergeEndpoints(base, extra map[string][]string) map[string][]string {
	out := make(map[string][]string, len(base)+len(extra))
	for bucket, descriptors := range base {
		out[bucket] = append([]string(nil), descriptors...)
	}
	for bucket, descriptors := range extra {
		out[bucket] = append(out[bucket], descriptors...)
	}
	return out
}

// Buckets returns the bucket names of c.Endpoints in sorted order.
func (c *Config) Buckets() []string {
	buckets := make([]string, 0, len(c.Endpoints))
	for bucket := range c.Endpoints {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)
	return buckets
}
