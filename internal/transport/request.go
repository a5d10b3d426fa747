package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/samidb/pkg/errors"
	"github.com/agentstation/samidb/pkg/logging"
)

// Payload is a successful API response.
type Payload struct {
	// URL is the "url" field of a JSON object body, when present.
	URL string

	// Body is the raw response body.
	Body []byte

	// ContentType is the response Content-Type header.
	ContentType string

	// StatusCode is the HTTP status of the response.
	StatusCode int
}

// ReadResponse reads and closes the response body. Non-2xx statuses become
// an *errors.APIError carrying the body text.
func ReadResponse(resp *http.Response) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var method, endpoint string
		if resp.Request != nil {
			method = resp.Request.Method
			endpoint = resp.Request.URL.String()
		}
		message := strings.TrimSpace(string(body))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, errors.NewAPIError(method, endpoint, resp.StatusCode, message)
	}

	return body, nil
}

// DecodeResponse decodes a JSON response into the target structure.
func DecodeResponse(resp *http.Response, target any) error {
	body, err := ReadResponse(resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}

// NewPayload reads the response and unwraps the "url" field of a JSON object body.
func NewPayload(resp *http.Response) (*Payload, error) {
	body, err := ReadResponse(resp)
	if err != nil {
		return nil, err
	}

	return &Payload{
		URL:         unwrapURL(body),
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}

// unwrapURL returns the non-empty string "url" field of a JSON object, or "".
func unwrapURL(body []byte) string {
	var envelope struct {
		URL any `json:"url"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if s, ok := envelope.URL.(string); ok {
		return s
	}
	return ""
}
