package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/samidb"
	"github.com/agentstation/samidb/internal/config"
	"github.com/agentstation/samidb/pkg/constants"
	"github.com/agentstation/samidb/pkg/endpoint"
	"github.com/agentstation/samidb/pkg/errors"
)

// isolate keeps real config and .env files out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

// newAPI serves a small endpoint catalog and the img endpoint.
func newAPI(t *testing.T, catalogStatus int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/v1/endpoints":
			w.WriteHeader(catalogStatus)
			_ = json.NewEncoder(w).Encode([]string{
				"GET,OPTIONS,HEAD/v1/img/<hug,pat,corn>",
				"POST,OPTIONS,HEAD/v1/upload",
			})
		case strings.HasPrefix(r.URL.Path, "/v1/img/"):
			sub := strings.TrimPrefix(r.URL.Path, "/v1/img/")
			_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example/" + sub + ".gif"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// run executes the CLI and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	nop := zerolog.Nop()
	application, err := New("1.2.3", "abc123", "2025-01-01", "test", WithLogger(&nop), WithOutput(&out))
	require.NoError(t, err)
	err = application.Execute(context.Background(), args)
	return out.String(), err
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	isolate(t)

	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	require.NotNil(t, app.Config())
	assert.Equal(t, constants.DefaultAPIURL, app.Config().APIURL)
	assert.Empty(t, app.OutputFormat())
}

// TestApp_Client_Singleton verifies that Client() caches the default instance.
func TestApp_Client_Singleton(t *testing.T) {
	isolate(t)
	srv := newAPI(t, http.StatusOK)
	t.Setenv("SAMIDB_API_URL", srv.URL)

	app, err := New("1.0.0", "test", "2024-01-01", "test")
	require.NoError(t, err)

	const goroutines = 20
	var wg sync.WaitGroup
	clients := make([]*samidb.Client, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			c, err := app.Client(context.Background())
			assert.NoError(t, err)
			clients[idx] = c
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, clients[0], clients[i])
	}
	assert.Equal(t, 2, clients[0].Registry().Len())
}

// TestApp_Client_WithOptions verifies that options build a fresh client.
func TestApp_Client_WithOptions(t *testing.T) {
	isolate(t)
	srv := newAPI(t, http.StatusOK)
	t.Setenv("SAMIDB_API_URL", srv.URL)

	app, err := New("1.0.0", "test", "2024-01-01", "test")
	require.NoError(t, err)

	cached, err := app.Client(context.Background())
	require.NoError(t, err)

	custom, err := app.Client(context.Background(), samidb.WithIgnoreDefaultEndpoints(true))
	require.NoError(t, err)

	assert.NotSame(t, cached, custom)
	assert.Equal(t, 0, custom.Registry().Len())
}

func TestExecute_Get(t *testing.T) {
	isolate(t)
	srv := newAPI(t, http.StatusOK)

	out, err := run(t, "--api-url", srv.URL, "get", "img", "hug")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/hug.gif\n", out)
}

func TestExecute_GetJSON(t *testing.T) {
	isolate(t)
	srv := newAPI(t, http.StatusOK)

	out, err := run(t, "--api-url", srv.URL, "-o", "json", "get", "img", "pat")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "https://cdn.example/pat.gif", got["url"])
	assert.EqualValues(t, 200, got["status_code"])
}

func TestExecute_GetUnknownEndpoint(t *testing.T) {
	isolate(t)
	srv := newAPI(t, http.StatusOK)

	_, err := run(t, "--api-url", srv.URL, "get", "nope")
	require.Error(t, err)
	assert.True(t, errors.IsUnknownEndpoint(err))
}

func TestExecute_CatalogFailure(t *testing.T) {
	isolate(t)
	srv := newAPI(t, http.StatusInternalServerError)

	_, err := run(t, "--api-url", srv.URL, "get", "img", "hug")
	require.Error(t, err)
	assert.True(t, errors.IsCatalogRetrieval(err))
}

func TestExecute_Reaction(t *testing.T) {
	isolate(t)
	srv := newAPI(t, http.StatusOK)

	out, err := run(t, "--api-url", srv.URL, "reaction", "Corn")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/corn.gif\n", out)

	_, err = run(t, "--api-url", srv.URL, "reaction", "wave")
	require.Error(t, err)
	assert.True(t, errors.IsUnknownEndpoint(err))
	assert.Contains(t, err.Error(), "reaction")
}

func TestExecute_URL(t *testing.T) {
	isolate(t)

	// No server: url never contacts the API.
	out, err := run(t, "--api-url", "http://x/", "--api-version", "2", "url", "foo")
	require.NoError(t, err)
	assert.Equal(t, "http://x/v2/foo\n", out)
}

func TestExecute_Endpoints(t *testing.T) {
	isolate(t)
	srv := newAPI(t, http.StatusOK)

	out, err := run(t, "--api-url", srv.URL, "-o", "json", "endpoints")
	require.NoError(t, err)

	var got []endpoint.Endpoint
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "/v1/img", got[0].URL)
	assert.Equal(t, []string{"hug", "pat", "corn"}, got[0].SubtypeNames())
	assert.Equal(t, "post", got[1].Type)

	out, err = run(t, "--api-url", srv.URL, "-o", "json", "endpoints", "--bucket", "post")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "/v1/upload", got[0].URL)

	_, err = run(t, "--api-url", srv.URL, "endpoints", "--bucket", "put")
	assert.True(t, errors.IsUnknownEndpointType(err))
}

func TestExecute_EndpointsSave(t *testing.T) {
	dir := isolate(t)
	srv := newAPI(t, http.StatusOK)
	path := filepath.Join(dir, "saved.yaml")

	out, err := run(t, "--api-url", srv.URL, "endpoints", "--save", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 endpoints")

	saved, err := config.LoadEndpointsFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"get":  {"GET,OPTIONS,HEAD/v1/img/<hug,pat,corn>"},
		"post": {"POST,OPTIONS,HEAD/v1/upload"},
	}, saved)

	// A saved file can replace the catalog.
	out, err = run(t, "--ignore-default-endpoints", "--api-url", srv.URL, "--endpoints-file", path, "get", "img", "hug")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/hug.gif\n", out)
}

func TestExecute_EndpointsSaveKeepsBuckets(t *testing.T) {
	dir := isolate(t)
	srv := newAPI(t, http.StatusOK)

	in := filepath.Join(dir, "in.yaml")
	require.NoError(t, config.WriteEndpointsFile(in, map[string][]string{
		"get": {"PUT,OPTIONS,HEAD/thing", "POST,OPTIONS,HEAD/other"},
	}))

	out := filepath.Join(dir, "out.yaml")
	_, err := run(t, "--ignore-default-endpoints", "--api-url", srv.URL, "--endpoints-file", in, "endpoints", "--save", out)
	require.NoError(t, err)

	saved, err := config.LoadEndpointsFile(out)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"get": {"PUT,OPTIONS,HEAD/thing", "POST,OPTIONS,HEAD/other"},
	}, saved)

	// The saved file loads back with the same lookup order.
	listed, err := run(t, "--ignore-default-endpoints", "--api-url", srv.URL, "--endpoints-file", out, "-o", "json", "endpoints", "--bucket", "get")
	require.NoError(t, err)

	var got []endpoint.Endpoint
	require.NoError(t, json.Unmarshal([]byte(listed), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "/thing", got[0].URL)
	assert.Equal(t, "/other", got[1].URL)
}

func TestExecute_ConfigFileEndpoints(t *testing.T) {
	dir := isolate(t)
	srv := newAPI(t, http.StatusOK)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".samidb.yaml"), []byte(`
api_url: `+srv.URL+`
ignore_default_endpoints: true
endpoints:
  get:
    - GET,OPTIONS,HEAD/img/<hug>
`), constants.FilePermissions))

	out, err := run(t, "get", "img", "hug")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/hug.gif\n", out)
}

func TestExecute_UnknownBucket(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "endpoints.yaml"), []byte(`
put:
  - PUT,OPTIONS,HEAD/foo
`), constants.FilePermissions))

	_, err := run(t, "--ignore-default-endpoints", "--endpoints-file", "endpoints.yaml", "get", "foo")
	require.Error(t, err)
	assert.True(t, errors.IsUnknownEndpointType(err))
}

func TestExecute_Parse(t *testing.T) {
	isolate(t)

	out, err := run(t, "-o", "json", "parse", "GET,OPTIONS,HEAD/img/<blush,bonk,boop>")
	require.NoError(t, err)

	var got endpoint.Endpoint
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, endpoint.Endpoint{Type: "get", URL: "/img", Subtypes: []string{"blush/", "bonk/", "boop/"}}, got)

	_, err = run(t, "parse", "--strict", "FETCH/foo")
	require.Error(t, err)
	var parseErr *errors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestExecute_Reactions(t *testing.T) {
	isolate(t)

	out, err := run(t, "-o", "yaml", "reactions")
	require.NoError(t, err)
	assert.Contains(t, out, "name: grouphug")
	assert.Contains(t, out, "description: Random corn image")
}

func TestExecute_InvalidFormat(t *testing.T) {
	isolate(t)

	_, err := run(t, "-o", "xml", "reactions")
	assert.Error(t, err)
}

func TestExecute_Version(t *testing.T) {
	isolate(t)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "samidb version 1.2.3")
	assert.Contains(t, out, "commit: abc123")
	assert.Contains(t, out, "built by: test")
}

func TestErrorHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "rate limited", err: errors.NewAPIError("GET", "/v1/img", http.StatusTooManyRequests, "slow down"), want: "rate limiting"},
		{name: "server error", err: errors.NewAPIError("GET", "/v1/img", http.StatusBadGateway, "bad gateway"), want: "server error"},
		{name: "catalog", err: errors.NewCatalogError("http://x/v1/endpoints", errors.New("boom")), want: "--ignore-default-endpoints"},
		{name: "unknown endpoint", err: errors.NewUnknownEndpointError("nope", 1), want: "samidb endpoints"},
		{name: "unknown bucket", err: errors.NewUnknownEndpointTypeError("put"), want: "get or post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, errorHint(tt.err), tt.want)
		})
	}

	assert.Empty(t, errorHint(errors.New("plain")))
}
