package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/samidb/pkg/constants"
	"github.com/agentstation/samidb/pkg/errors"
)

// EndpointsFile is the layout of an endpoints file:
//
//	get:
//	  - GET,OPTIONS,HEAD/img/<hug,pat>
//	post:
//	  - POST,OPTIONS,HEAD/upload
//
// Bucket names other than get and post are kept so that the client can
// reject them.
type EndpointsFile map[string][]string

// LoadEndpointsFile reads custom endpoint descriptors from a YAML file.
func LoadEndpointsFile(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseEndpoints(path, data)
}

// ParseEndpoints decodes endpoints file content. name is used in errors.
func ParseEndpoints(name string, data []byte) (map[string][]string, error) {
	var file EndpointsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}
	return normalizeEndpoints(file), nil
}

// WriteEndpointsFile writes descriptors in the endpoints file layout.
func WriteEndpointsFile(path string, endpoints map[string][]string) error {
	data, err := yaml.MarshalWithOptions(EndpointsFile(endpoints),
		yaml.Indent(2),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
