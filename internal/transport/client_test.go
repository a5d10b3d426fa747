package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/samidb/pkg/constants"
	"github.com/agentstation/samidb/pkg/errors"
	"github.com/agentstation/samidb/pkg/logging"
)

func TestClient_Do_Headers(t *testing.T) {
	var got http.Header
	var method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		method = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(nil, "")
	resp, err := c.Do(context.Background(), http.MethodPost, server.URL)
	require.NoError(t, err)
	_, err = ReadResponse(resp)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, constants.DefaultUserAgent, got.Get("User-Agent"))
	assert.NotEmpty(t, got.Get(constants.RequestIDHeader))
}

func TestClient_Do_RequestIDFromContext(t *testing.T) {
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get(constants.RequestIDHeader)
	}))
	defer server.Close()

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRequestID(ctx, "req-42")

	resp, err := New(server.Client(), "custom-agent").Get(ctx, server.URL)
	require.NoError(t, err)
	_, _ = ReadResponse(resp)

	assert.Equal(t, "req-42", requestID)
	tl.AssertContains(t, "Sending request")
	tl.AssertContains(t, `"request_id":"req-42"`)
}

func TestClient_Do_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(nil, "").Get(context.Background(), url)
	require.Error(t, err)
	assert.False(t, errors.IsServiceUnavailable(err))
}

func TestClient_Do_BadURL(t *testing.T) {
	_, err := New(nil, "").Do(context.Background(), "GET", "http://bad host/")
	require.Error(t, err)

	var resErr *errors.ResourceError
	assert.ErrorAs(t, err, &resErr)
}

func TestReadResponse_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	resp, err := New(nil, "").Get(context.Background(), server.URL+"/v1/img/hug")
	require.NoError(t, err)

	_, err = ReadResponse(resp)
	require.Error(t, err)

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "GET", apiErr.Method)
	assert.Equal(t, server.URL+"/v1/img/hug", apiErr.Endpoint)
	assert.Equal(t, "Service Unavailable", apiErr.Message)
	assert.True(t, errors.IsServiceUnavailable(err))
}

func TestNewPayload(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantURL string
	}{
		{name: "url field", body: `{"url":"https://cdn.samidb.xyz/hug/1.gif"}`, wantURL: "https://cdn.samidb.xyz/hug/1.gif"},
		{name: "empty url", body: `{"url":""}`},
		{name: "non-string url", body: `{"url":5}`},
		{name: "array body", body: `["a","b"]`},
		{name: "plain text", body: `hello`},
		{name: "object without url", body: `{"status":"ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resp, err := New(nil, "").Get(context.Background(), server.URL)
			require.NoError(t, err)

			p, err := NewPayload(resp)
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, p.URL)
			assert.Equal(t, tt.body, string(p.Body))
			assert.Equal(t, "application/json", p.ContentType)
			assert.Equal(t, http.StatusOK, p.StatusCode)
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			_, _ = w.Write([]byte(`{`))
			return
		}
		_, _ = w.Write([]byte(`["GET,OPTIONS,HEAD/foo"]`))
	}))
	defer server.Close()

	c := New(nil, "")

	resp, err := c.Get(context.Background(), server.URL)
	require.NoError(t, err)
	var list []string
	require.NoError(t, DecodeResponse(resp, &list))
	assert.Equal(t, []string{"GET,OPTIONS,HEAD/foo"}, list)

	resp, err = c.Get(context.Background(), server.URL+"/bad")
	require.NoError(t, err)
	err = DecodeResponse(resp, &list)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
