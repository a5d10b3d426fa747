package samidb

import (
	"fmt"

	"github.com/agentstation/samidb/pkg/constants"
	"github.com/agentstation/samidb/pkg/endpoint"
	"github.com/agentstation/samidb/pkg/errors"
)

// Registry holds the endpoints a Client can resolve, split into the get and
// post buckets. It is filled while New runs and read-only afterwards.
type Registry struct {
	get  []endpoint.Endpoint
	post []endpoint.Endpoint
}

// bucket returns a pointer to the named bucket, or nil for unknown names.
func (r *Registry) bucket(name string) *[]endpoint.Endpoint {
	switch name {
	case constants.BucketGet:
		return &r.get
	case constants.BucketPost:
		return &r.post
	}
	return nil
}

// add appends endpoints to a bucket in order. Duplicates are kept.
func (r *Registry) add(bucket string, endpoints ...endpoint.Endpoint) error {
	b := r.bucket(bucket)
	if b == nil {
		return errors.NewUnknownEndpointTypeError(bucket)
	}
	*b = append(*b, endpoints...)
	return nil
}

// addDescriptors parses catalog descriptors and files each under its own verb.
func (r *Registry) addDescriptors(descriptors []string) error {
	for _, d := range descriptors {
		e := endpoint.Parse(d)
		if b := r.bucket(e.Type); b != nil {
			*b = append(*b, e)
			continue
		}
		return fmt.Errorf("descriptor %q names unknown endpoint type %q", d, e.Type)
	}
	return nil
}

// Lookup returns the first endpoint, get bucket first, whose path is
// "/{name}" or "/v{version}/{name}".
func (r *Registry) Lookup(name string, version int) (endpoint.Endpoint, bool) {
	short := "/" + name
	versioned := fmt.Sprintf("/v%d/%s", version, name)

	for _, e := range r.Endpoints() {
		if e.URL == short || e.URL == versioned {
			return e, true
		}
	}
	return endpoint.Endpoint{}, false
}

// Endpoints returns every endpoint in lookup order.
func (r *Registry) Endpoints() []endpoint.Endpoint {
	all := make([]endpoint.Endpoint, 0, len(r.get)+len(r.post))
	all = append(all, r.get...)
	return append(all, r.post...)
}

// Bucket returns a copy of one bucket, or nil when the name is not get or post.
func (r *Registry) Bucket(name string) []endpoint.Endpoint {
	b := r.bucket(name)
	if b == nil {
		return nil
	}
	return append([]endpoint.Endpoint{}, (*b)...)
}

// Len returns the number of registered endpoints.
func (r *Registry) Len() int {
	return len(r.get) + len(r.post)
}
