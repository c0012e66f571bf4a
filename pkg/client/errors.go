package client

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by errors raised for caller input that is
// rejected before any network call is made.
var ErrInvalidArgument = errors.New("invalid argument")

// ConfigurationError reports an unusable client setting, such as an unknown
// response format. It is raised at the point the setting is applied.
type ConfigurationError struct {
	Setting string
	Value   string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Setting, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: use either \"json\" or \"xml\"", e.Setting, e.Value)
}

// TransportError wraps a network-level failure (connect, timeout, DNS).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is returned when the New Relic service answers with a
// non-success status code.
type APIError struct {
	StatusCode int
	Message    string
	RawBody    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("newrelic API error %d: %s", e.StatusCode, e.Message)
}

// DecodeError reports a response body that did not parse under the
// selected format.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
