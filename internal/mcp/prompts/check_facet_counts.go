package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var defaultEventTypes = []string{"Transaction", "TransactionError"}

// HandleCheckFacetCounts serves the facet count verification workflow.
func HandleCheckFacetCounts(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var args map[string]string
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}

		eventTypes := splitList(args["event_types"])
		if len(eventTypes) == 0 {
			eventTypes = defaultEventTypes
		}
		window := timeWindow(args["since"], args["until"])

		var sb strings.Builder

		sb.WriteString("# Check Facet Counts\n\n")
		sb.WriteString("You are verifying that an instrumented application reported every event it should have. ")
		sb.WriteString("Correlated event types (for example a Transaction that ended in an error and the TransactionError it produced) must report the same count for the same window.\n\n")

		if !cfg.InsightsConfigured {
			sb.WriteString("> **Note**: the Insights query key or account id is not configured. ")
			sb.WriteString("Set NEW_RELIC_INSIGHTS_API_KEY and NEW_RELIC_INSIGHTS_ACCOUNT_ID before running the tools below.\n\n")
		} else if cfg.AccountID != "" {
			fmt.Fprintf(&sb, "Queries run against account `%s`.\n\n", cfg.AccountID)
		}

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Explore** the attributes that identify the test traffic\n")
		fmt.Fprintf(&sb, "   - `newrelic_insights_query(nrql=\"SELECT count(*) FROM %s FACET appName %s\")`\n", eventTypes[0], window)
		sb.WriteString("2. **Write one FACET count query per event type**, filtered to the same traffic and window\n")
		sb.WriteString("   - Facet on the attribute that carries the error class so the first facet is the one under test\n")
		sb.WriteString("   - Keep SINCE and UNTIL identical across queries\n")
		sb.WriteString("3. **Compare** with a single call\n\n")

		sb.WriteString("```\n")
		sb.WriteString("newrelic_compare_facet_counts(queries=[\n")
		for _, et := range eventTypes {
			fmt.Fprintf(&sb, "  {label: %q, nrql: \"SELECT count(*) FROM %s FACET <attribute> WHERE <filter> %s\"},\n", et, et, window)
		}
		sb.WriteString("])\n")
		sb.WriteString("```\n\n")

		sb.WriteString("## Interpreting the Result\n\n")
		sb.WriteString("- `match: true`: every query's first facet reported the same count\n")
		sb.WriteString("- `match: false`: investigate the lower count first; events may have been dropped or filtered\n")
		sb.WriteString("- `empty: true` on a row: that query matched no events, so its count is 0; check the WHERE clause before assuming loss\n")
		sb.WriteString("- A DECODE_ERROR means a query did not return facets; make sure it uses `SELECT count(*) ... FACET ...`\n\n")

		sb.WriteString("## Tips\n\n")
		sb.WriteString("- Use backticks for attribute names with dots, e.g. FACET `error.class`\n")
		sb.WriteString("- Use `newrelic_insights_query` with `jq: \".facets[] | {name, count: .results[0].count}\"` to see every facet, not just the first\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for verifying correlated event counts",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// timeWindow renders the SINCE/UNTIL clause. Literal timestamps are quoted;
// relative expressions such as "1 hour ago" are left as-is.
func timeWindow(since, until string) string {
	since, until = strings.TrimSpace(since), strings.TrimSpace(until)
	if since == "" {
		since = "1 hour ago"
	}
	clause := "SINCE " + nrqlTime(since)
	if until != "" {
		clause += " UNTIL " + nrqlTime(until)
	}
	return clause
}

func nrqlTime(s string) string {
	if strings.HasSuffix(s, " ago") || s == "now" || strings.HasPrefix(s, "'") {
		return s
	}
	return "'" + s + "'"
}
