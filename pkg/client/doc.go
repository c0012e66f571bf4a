// Package client provides a minimal typed client for the New Relic REST API
// and the Insights query API.
//
// # Quick Start
//
// Run an NRQL query against the Insights API:
//
//	c := client.NewInsights(queryKey, accountID)
//	resp, err := c.Query(ctx, "SELECT count(*) FROM Transaction FACET appName SINCE 1 hour ago")
//	if err != nil {
//	    return err
//	}
//	result, err := c.Parser().Parse(resp)
//
// Or decode into the typed payload:
//
//	payload, err := client.DecodeInsights(resp)
//	for _, f := range payload.Facets {
//	    fmt.Println(f.Name, f.Results[0]["count"])
//	}
//
// Call a REST endpoint with filters:
//
//	c := client.New(apiKey, client.WithBaseURL("https://api.newrelic.com/v2"))
//	c.AddFilter(client.NewFilter("filter[name]", "checkout"))
//	resp, err := c.Request(ctx, "/applications", http.MethodGet, nil)
//
// # Formats
//
// The REST client appends ".json" or ".xml" to the endpoint path according to
// its format and decodes with the matching parser. Pass only the bare path:
// full URLs and paths already ending in a format suffix are rejected with
// ErrInvalidArgument. SetFormat rejects unknown formats immediately with a
// *ConfigurationError. The Insights client only speaks JSON.
//
// # Filters
//
// Filters accumulate on a client and are not cleared after a request. Use
// ClearFilters between unrelated requests, or use a fresh client per query.
//
// # Errors
//
//   - ErrInvalidArgument (wrapped): bad endpoint path, rejected before sending.
//   - *ConfigurationError: unknown format.
//   - *TransportError: network failure; unwraps to the cause.
//   - *APIError: non-2xx status, with the message extracted from the body.
//   - *DecodeError: body did not parse under the selected format.
//
// There are no retries; each call makes exactly one attempt.
package client
