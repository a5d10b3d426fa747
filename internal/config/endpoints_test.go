package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/samidb/pkg/errors"
)

func TestParseEndpoints(t *testing.T) {
	got, err := ParseEndpoints("inline", []byte(`
GET:
  - GET,OPTIONS,HEAD/img/<blush,bonk,boop>
  - GET,OPTIONS,HEAD/foo
post:
  - POST,OPTIONS,HEAD/upload
empty: []
`))
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"get":  {"GET,OPTIONS,HEAD/img/<blush,bonk,boop>", "GET,OPTIONS,HEAD/foo"},
		"post": {"POST,OPTIONS,HEAD/upload"},
	}, got)
}

func TestParseEndpoints_Invalid(t *testing.T) {
	_, err := ParseEndpoints("broken.yaml", []byte("get: [unterminated"))
	require.Error(t, err)

	var parseErr *errors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "yaml", parseErr.Format)
	assert.Equal(t, "broken.yaml", parseErr.Input)
	assert.True(t, errors.IsValidationError(err))
}

func TestWriteEndpointsFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoints.yaml")
	want := map[string][]string{
		"get":  {"GET,OPTIONS,HEAD/img/<hug,pat>"},
		"post": {"POST,OPTIONS,HEAD/upload"},
	}

	require.NoError(t, WriteEndpointsFile(path, want))

	got, err := LoadEndpointsFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteEndpointsFile_BadPath(t *testing.T) {
	err := WriteEndpointsFile(filepath.Join(t.TempDir(), "missing", "endpoints.yaml"), nil)
	require.Error(t, err)

	var ioErr *errors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write", ioErr.Operation)
}
