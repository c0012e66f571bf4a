package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultInsightsURL is the default base URL for the Insights query API (v1).
const DefaultInsightsURL = "https://staging-insights-api.newrelic.com/v1"

// QueryKeyHeader carries the Insights query key.
const QueryKeyHeader = "X-Query-Key"

// NRQLFilter is the query parameter carrying the NRQL text.
const NRQLFilter = "nrql"

const endpointQuery = "/accounts/%s/query"

// InsightsClient runs NRQL against the Insights query endpoint of one account.
// The endpoint is fixed, so requests carry no format suffix and only JSON
// responses are supported.
//
// Like Client, filters (including the nrql filter set by Query) persist
// across requests until ClearFilters is called.
type InsightsClient struct {
	r         *requester
	accountID string
}

// NewInsights creates an Insights client for accountID authenticated with queryKey.
func NewInsights(queryKey, accountID string, opts ...Option) *InsightsClient {
	return &InsightsClient{
		r:         newRequester(QueryKeyHeader, queryKey, DefaultInsightsURL, opts),
		accountID: accountID,
	}
}

// AccountID returns the account the client queries.
func (c *InsightsClient) AccountID() string {
	return c.accountID
}

// AddFilter adds a query parameter, replacing any earlier filter of the same name.
func (c *InsightsClient) AddFilter(f Filter) {
	c.r.filters.add(f)
}

// ClearFilters removes all accumulated filters.
func (c *InsightsClient) ClearFilters() {
	c.r.filters.clear()
}

// Filters returns a copy of the accumulated filters.
func (c *InsightsClient) Filters() map[string]string {
	return c.r.filters.snapshot()
}

// Query sets the nrql filter and issues a GET against the query endpoint.
// The NRQL text is passed through opaquely.
func (c *InsightsClient) Query(ctx context.Context, nrql string) (*Response, error) {
	c.AddFilter(NewFilter(NRQLFilter, nrql))
	return c.Request(ctx, http.MethodGet, nil)
}

// Request issues a request against the fixed query endpoint using the
// accumulated filters. The X-Query-Key header always overrides a
// caller-supplied header of the same name.
func (c *InsightsClient) Request(ctx context.Context, method string, headers http.Header) (*Response, error) {
	return c.r.do(ctx, method, c.endpoint(), headers)
}

func (c *InsightsClient) endpoint() string {
	return fmt.Sprintf(endpointQuery, url.PathEscape(c.accountID))
}

// SetFormat accepts only "json"; the query endpoint has a single implicit
// format. Anything else returns *ConfigurationError.
func (c *InsightsClient) SetFormat(format string) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	if f != FormatJSON {
		return &ConfigurationError{Setting: "format", Value: format, Reason: "the Insights query endpoint only returns json"}
	}
	c.r.setFormat(FormatJSON, JSONParser{})
	return nil
}

// Format always reports FormatJSON.
func (c *InsightsClient) Format() Format {
	return FormatJSON
}

// Parser returns the JSON parser.
func (c *InsightsClient) Parser() ResponseParser {
	return JSONParser{}
}

// APIURL returns the base URL in effect.
func (c *InsightsClient) APIURL() string {
	return c.r.apiURL()
}

// SetAPIURL overrides the base URL. An empty value restores DefaultInsightsURL.
func (c *InsightsClient) SetAPIURL(u string) {
	c.r.setAPIURL(u)
}
