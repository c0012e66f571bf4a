package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/usestring/nrql-mcp/internal/facets"
	"github.com/usestring/nrql-mcp/internal/nrql"
	"github.com/usestring/nrql-mcp/pkg/client"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeNewRelic     = "NEWRELIC_ERROR"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeDecode       = "DECODE_ERROR"
	ErrCodeConfig       = "CONFIG_ERROR"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapClientError maps errors from the client, runner and facet packages to
// coded errors. Already-coded errors pass through unchanged.
func WrapClientError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}
	coded = classify(err)

	slog.Warn("newrelic tool error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)
	return coded
}

func classify(err error) *CodedError {
	var (
		apiErr    *client.APIError
		cfgErr    *client.ConfigurationError
		decodeErr *client.DecodeError
		shapeErr  *facets.ValidationError
		netErr    net.Error
	)

	switch {
	case errors.As(err, &apiErr):
		code := ErrCodeNewRelic
		if apiErr.StatusCode == http.StatusNotFound {
			code = ErrCodeNotFound
		}
		return &CodedError{Code: code, Message: apiErr.Message, Cause: err}
	case errors.Is(err, client.ErrInvalidArgument):
		return &CodedError{Code: ErrCodeInvalidInput, Message: "invalid argument", Cause: err}
	case errors.As(err, &cfgErr), errors.Is(err, nrql.ErrNotConfigured):
		return &CodedError{Code: ErrCodeConfig, Message: "configuration error", Cause: err}
	case errors.As(err, &decodeErr), errors.As(err, &shapeErr):
		return &CodedError{Code: ErrCodeDecode, Message: "unexpected response body", Cause: err}
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	default:
		return &CodedError{Code: ErrCodeNewRelic, Message: err.Error(), Cause: err}
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
