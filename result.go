package samidb

// Result is the outcome of a successful Get.
type Result struct {
	// URL is the media address taken from a JSON body's "url" field.
	// It is empty when the body had no such field.
	URL string

	// Body is the raw response body.
	Body []byte

	// ContentType is the response Content-Type header.
	ContentType string

	// StatusCode is the HTTP status of the response.
	StatusCode int
}

// HasURL reports whether the response carried a media URL.
func (r *Result) HasURL() bool {
	return r.URL != ""
}

// String returns the media URL when present, otherwise the raw body.
func (r *Result) String() string {
	if r.URL != "" {
		return r.URL
	}
	return string(r.Body)
}
