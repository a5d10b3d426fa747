// Package transport performs the HTTP round trips for the samidb client.
package transport

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/agentstation/samidb/pkg/constants"
	"github.com/agentstation/samidb/pkg/errors"
	"github.com/agentstation/samidb/pkg/logging"
)

// Client provides HTTP client functionality with the headers every API call carries.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a new transport client. A nil http client uses a fresh
// http.Client without a timeout; cancellation comes from the request context.
func New(httpClient *http.Client, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if userAgent == "" {
		userAgent = constants.DefaultUserAgent
	}
	return &Client{
		http:      httpClient,
		userAgent: userAgent,
	}
}

// Do performs an HTTP request with the given method against url.
// Transport failures are returned as reported by net/http.
func (c *Client) Do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+url, err)
	}

	requestID := logging.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(constants.RequestIDHeader, requestID)

	log := logging.FromContext(ctx)
	log.Debug().
		Str("method", method).
		Str("url", url).
		Str("request_id", requestID).
		Msg("Sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("request_id", requestID).Msg("Request failed")
		return nil, err
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Msg("Received response")

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, url)
}
