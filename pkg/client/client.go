package client

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
)

// DefaultAPIURL is the default base URL for the New Relic REST API (v2).
const DefaultAPIURL = "https://staging-api.newrelic.com/v2"

// APIKeyHeader carries the REST API key.
const APIKeyHeader = "X-Api-Key"

var (
	schemePrefix = regexp.MustCompile(`^https?:`)
	formatSuffix = regexp.MustCompile(`(\.json|\.xml)$`)
)

// Client is a New Relic REST API client.
//
// Filters accumulate on the client and are not cleared between requests.
// Reusing a client for unrelated requests carries earlier filters along;
// call ClearFilters between them. A Client is safe to share, but concurrent
// AddFilter/Request pairs from different callers see each other's filters.
type Client struct {
	r *requester
}

// New creates a REST API client authenticated with apiKey.
// The response format defaults to JSON.
func New(apiKey string, opts ...Option) *Client {
	return &Client{r: newRequester(APIKeyHeader, apiKey, DefaultAPIURL, opts)}
}

// AddFilter adds a query parameter, replacing any earlier filter of the same name.
func (c *Client) AddFilter(f Filter) {
	c.r.filters.add(f)
}

// ClearFilters removes all accumulated filters.
func (c *Client) ClearFilters() {
	c.r.filters.clear()
}

// Filters returns a copy of the accumulated filters.
func (c *Client) Filters() map[string]string {
	return c.r.filters.snapshot()
}

// Request issues one request against an endpoint path such as "/applications".
//
// The path must not be a full URL and must not carry a .json or .xml suffix;
// the suffix is appended from the client's format. Such paths are rejected
// with an error wrapping ErrInvalidArgument before any network call.
// An empty method means GET. The X-Api-Key header always overrides a
// caller-supplied header of the same name.
//
// Non-success statuses return *APIError; network failures return
// *TransportError; a base URL that does not parse returns *ConfigurationError.
// The returned Response is decoded with Parser().
func (c *Client) Request(ctx context.Context, uri, method string, headers http.Header) (*Response, error) {
	if err := validateURI(uri); err != nil {
		return nil, err
	}
	format, _ := c.r.currentFormat()
	return c.r.do(ctx, method, uri+"."+string(format), headers)
}

func validateURI(uri string) error {
	if schemePrefix.MatchString(uri) {
		return fmt.Errorf("%w: URI %q is a full URL; pass only the endpoint path like \"/applications\"", ErrInvalidArgument, uri)
	}
	if formatSuffix.MatchString(uri) {
		return fmt.Errorf("%w: URI %q carries a format suffix; use SetFormat instead", ErrInvalidArgument, uri)
	}
	return nil
}

// SetFormat selects the response format and re-binds the matching parser.
// Unknown formats return *ConfigurationError and leave the client unchanged.
func (c *Client) SetFormat(format string) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	p, err := ParserFor(f)
	if err != nil {
		return err
	}
	c.r.setFormat(f, p)
	return nil
}

// Format returns the current response format.
func (c *Client) Format() Format {
	f, _ := c.r.currentFormat()
	return f
}

// Parser returns the parser matching the current format.
func (c *Client) Parser() ResponseParser {
	_, p := c.r.currentFormat()
	return p
}

// APIURL returns the base URL in effect.
func (c *Client) APIURL() string {
	return c.r.apiURL()
}

// SetAPIURL overrides the base URL. An empty value restores DefaultAPIURL.
func (c *Client) SetAPIURL(u string) {
	c.r.setAPIURL(u)
}
