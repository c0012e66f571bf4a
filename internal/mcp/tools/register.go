// Package tools contains MCP tool implementations for New Relic.
package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolNameInsightsQuery      = "newrelic_insights_query"
	ToolNameAPIRequest         = "newrelic_api_request"
	ToolNameCompareFacetCounts = "newrelic_compare_facet_counts"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        ToolNameInsightsQuery,
		Description: "Run an NRQL query against the configured Insights account. Returns a summary (facet_count, result_count, event_types, time window) and the decoded result, compacted by default. Pass jq to extract specific values instead of returning data, e.g. '.facets[] | {name, count: .results[0].count}'. Identical queries in flight at the same time share one request.",
	}, ToolInsightsQuery(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        ToolNameAPIRequest,
		Description: "Read from the New Relic REST API (v2). path is a resource path without extension (e.g. /applications); the .json or .xml suffix comes from format. filters become query parameters. Use jq for json responses or xpath for xml responses to extract values; otherwise data is returned compacted. Only GET and HEAD are allowed.",
	}, ToolAPIRequest(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        ToolNameCompareFacetCounts,
		Description: "Run two or more correlated FACET count queries concurrently and check that their first facet counts agree, e.g. Transaction events vs TransactionError events for the same window. Returns per-query counts, match, and a text report. A query that matches no events counts as 0.",
	}, ToolCompareFacetCounts(d))
}
