package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/nrql-mcp/pkg/client"
	"github.com/usestring/nrql-mcp/pkg/types"
)

// InsightsQueryInput is the input for newrelic_insights_query.
type InsightsQueryInput struct {
	NRQL       string `json:"nrql" jsonschema:"NRQL query text, e.g. SELECT count(*) FROM Transaction FACET name SINCE 1 hour ago"`
	JQ         string `json:"jq,omitempty" jsonschema:"Optional JQ expression applied to the decoded result, e.g. .facets[] | {name, count: .results[0].count}"`
	Dedupe     bool   `json:"dedupe,omitempty" jsonschema:"Drop repeated jq values, e.g. distinct facet names across time buckets"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Max values returned by the jq expression (default: 1000)"`
	Compact    *bool  `json:"compact,omitempty" jsonschema:"Trim long arrays and strings in data (default: true)"`
}

// ToolInsightsQuery runs NRQL against the configured Insights account.
func ToolInsightsQuery(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InsightsQueryInput) (*sdkmcp.CallToolResult, types.InsightsQueryResponse, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InsightsQueryInput) (*sdkmcp.CallToolResult, types.InsightsQueryResponse, error) {
		if strings.TrimSpace(input.NRQL) == "" {
			return nil, types.InsightsQueryResponse{}, ErrInvalidInput("nrql is required")
		}
		if input.JQ != "" {
			if err := d.Query.ValidateExpression(input.JQ); err != nil {
				return nil, types.InsightsQueryResponse{}, ErrInvalidInput(err.Error())
			}
		}

		res, err := d.Runner.Run(ctx, input.NRQL)
		if err != nil {
			return nil, types.InsightsQueryResponse{}, err
		}

		output := types.InsightsQueryResponse{
			AccountID:  d.Runner.AccountID(),
			NRQL:       strings.TrimSpace(input.NRQL),
			DurationMs: res.Duration.Milliseconds(),
			Shared:     res.Shared,
			Summary:    summarize(res.Insights),
		}

		if input.JQ != "" {
			maxResults := d.maxResults(input.MaxResults)
			extracted, err := d.Query.JQ(res.Parsed, input.JQ, input.Dedupe, maxResults)
			if err != nil {
				return nil, types.InsightsQueryResponse{}, ErrInvalidInput(err.Error())
			}
			output.Extraction = toExtraction(modeJQ, input.JQ, extracted)
			switch {
			case len(extracted.Values) == 0 && output.Summary.FacetCount > 0:
				output.Hints = append(output.Hints, "No values matched. FACET results live under .facets[] with counts at .results[0].count.")
			case len(extracted.Values) == 0:
				output.Hints = append(output.Hints, "No values matched. Non-FACET results live under .results[]; SELECT * events under .results[0].events[].")
			case extracted.Truncated:
				output.Hints = append(output.Hints, fmt.Sprintf("Truncated at %d values. Raise max_results or narrow the jq expression.", maxResults))
			}
			return nil, output, nil
		}

		data, compaction := d.shapeData(res.Parsed, wantCompact(input.Compact))
		output.Data = data
		output.Compaction = compaction
		if compaction != nil {
			output.Hints = append(output.Hints, "Data was compacted. Use jq to extract specific values or set compact=false for the full result.")
		}
		return nil, output, nil
	}
}

func summarize(r *client.InsightsResult) types.InsightsSummary {
	s := types.InsightsSummary{
		FacetCount:  len(r.Facets),
		ResultCount: len(r.Results),
		EventCount:  len(r.Events()),
		BeginTime:   r.Metadata.BeginTime,
		EndTime:     r.Metadata.EndTime,
	}
	for _, et := range r.Metadata.EventTypes {
		if name, ok := et.(string); ok {
			s.EventTypes = append(s.EventTypes, name)
		}
	}
	return s
}
