package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "check_facet_counts",
		Description: "RECOMMENDED: Verify that correlated event types report the same count over a time window (e.g. every stress-test Transaction error also produced a TransactionError event). Guides query construction and interpretation of newrelic_compare_facet_counts.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "event_types",
				Description: "Comma-separated event types to compare (default: Transaction,TransactionError)",
				Required:    false,
			},
			{
				Name:        "since",
				Description: "Window start, as NRQL accepts it (e.g. '2026-10-01 00:00:00' or '1 hour ago')",
				Required:    false,
			},
			{
				Name:        "until",
				Description: "Window end (default: now)",
				Required:    false,
			},
		},
	}, HandleCheckFacetCounts(cfg))
}
