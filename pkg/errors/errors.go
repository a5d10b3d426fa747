// Package errors provides custom error types for the samidb client.
// These errors enable programmatic error checking with errors.Is and
// errors.As while keeping the underlying cause available for debugging.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are the standard library helpers, re-exported so callers
// need a single errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the samidb client
var (
	// ErrUnknownEndpoint indicates that no registered endpoint matches a name
	ErrUnknownEndpoint = errors.New("unknown endpoint")

	// ErrUnknownEndpointType indicates a custom endpoint bucket other than get or post
	ErrUnknownEndpointType = errors.New("unknown endpoint type")

	// ErrCatalogRetrieval indicates that the default endpoints could not be loaded
	ErrCatalogRetrieval = errors.New("could not retrieve default endpoints")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrServiceUnavailable indicates that the API answered with a server error
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrRateLimited indicates that the API rejected the request with 429
	ErrRateLimited = errors.New("rate limited")
)

// UnknownEndpointError is returned when a logical endpoint name cannot be resolved
type UnknownEndpointError struct {
	Resource string // "endpoint" or "reaction"
	Name     string
	Version  int
}

// Error implements the error interface
func (e *UnknownEndpointError) Error() string {
	resource := e.Resource
	if resource == "" {
		resource = "endpoint"
	}
	if e.Version > 0 {
		return fmt.Sprintf("unknown %s %q (api v%d)", resource, e.Name, e.Version)
	}
	return fmt.Sprintf("unknown %s %q", resource, e.Name)
}

// Is implements errors.Is support
func (e *UnknownEndpointError) Is(target error) bool {
	return target == ErrUnknownEndpoint
}

// NewUnknownEndpointError creates a new UnknownEndpointError
func NewUnknownEndpointError(name string, version int) *UnknownEndpointError {
	return &UnknownEndpointError{Resource: "endpoint", Name: name, Version: version}
}

// UnknownEndpointTypeError is returned when custom endpoints name a bucket
// the registry does not have
type UnknownEndpointTypeError struct {
	Bucket string
}

// Error implements the error interface
func (e *UnknownEndpointTypeError) Error() string {
	return fmt.Sprintf("unknown endpoint type %q (expected get or post)", e.Bucket)
}

// Is implements errors.Is support
func (e *UnknownEndpointTypeError) Is(target error) bool {
	return target == ErrUnknownEndpointType
}

// NewUnknownEndpointTypeError creates a new UnknownEndpointTypeError
func NewUnknownEndpointTypeError(bucket string) *UnknownEndpointTypeError {
	return &UnknownEndpointTypeError{Bucket: bucket}
}

// CatalogError reports a failed default endpoint retrieval. Every cause
// (transport, status, payload shape, unknown bucket) produces the same message.
type CatalogError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s from %s (likely a problem with the api itself)", ErrCatalogRetrieval.Error(), e.URL)
}

// Unwrap implements errors.Unwrap
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CatalogError) Is(target error) bool {
	return target == ErrCatalogRetrieval
}

// NewCatalogError creates a new CatalogError
func NewCatalogError(url string, err error) *CatalogError {
	return &CatalogError{URL: url, Err: err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents a non-success response from the API
type APIError struct {
	StatusCode int
	Method     string
	Endpoint   string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s %s (status %d): %s", e.Method, e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s %s: %s", e.Method, e.Endpoint, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrServiceUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(method, endpoint string, statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Method:     method,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "descriptor"
	Input   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s parse error in %q: %s", e.Format, e.Input, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError
func NewParseError(format, input, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Input:   input,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "build", "load"
	Resource  string // "request", "client", "config"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsUnknownEndpoint checks if an error is an unknown endpoint error
func IsUnknownEndpoint(err error) bool {
	return errors.Is(err, ErrUnknownEndpoint)
}

// IsUnknownEndpointType checks if an error is an unknown endpoint type error
func IsUnknownEndpointType(err error) bool {
	return errors.Is(err, ErrUnknownEndpointType)
}

// IsCatalogRetrieval checks if an error is a default endpoint retrieval failure
func IsCatalogRetrieval(err error) bool {
	return errors.Is(err, ErrCatalogRetrieval)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsServiceUnavailable checks if an error indicates a server side failure
func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, input string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, input, err.Error(), err)
}
