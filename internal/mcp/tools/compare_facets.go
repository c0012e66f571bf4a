package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/nrql-mcp/internal/facets"
	"github.com/usestring/nrql-mcp/pkg/types"
)

// CompareFacetCountsInput is the input for newrelic_compare_facet_counts.
type CompareFacetCountsInput struct {
	Queries []LabeledNRQL `json:"queries" jsonschema:"Two or more FACET count queries whose first facet counts should agree"`
}

// LabeledNRQL is one query of a comparison.
type LabeledNRQL struct {
	Label string `json:"label,omitempty" jsonschema:"Row label in the report, e.g. Transaction"`
	NRQL  string `json:"nrql" jsonschema:"SELECT count(*) ... FACET ... query"`
}

// ToolCompareFacetCounts runs correlated FACET count queries concurrently and
// reports whether their first facet counts match.
func ToolCompareFacetCounts(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CompareFacetCountsInput) (*sdkmcp.CallToolResult, types.CompareFacetCountsResponse, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CompareFacetCountsInput) (*sdkmcp.CallToolResult, types.CompareFacetCountsResponse, error) {
		if len(input.Queries) < 2 {
			return nil, types.CompareFacetCountsResponse{}, ErrInvalidInput("at least two queries are required")
		}

		queries := make([]facets.LabeledQuery, len(input.Queries))
		for i, q := range input.Queries {
			if q.NRQL == "" {
				return nil, types.CompareFacetCountsResponse{}, ErrInvalidInput("every query needs nrql")
			}
			queries[i] = facets.LabeledQuery{Label: q.Label, NRQL: q.NRQL}
		}

		cmp, err := facets.Compare(ctx, d.Runner, queries)
		if err != nil {
			return nil, types.CompareFacetCountsResponse{}, err
		}

		output := types.CompareFacetCountsResponse{
			Match:  cmp.Match,
			Counts: make([]types.FacetCount, 0, len(cmp.Counts)),
			Report: cmp.Report(),
		}
		for _, c := range cmp.Counts {
			output.Counts = append(output.Counts, types.FacetCount{
				Label: c.Label,
				NRQL:  c.NRQL,
				Facet: c.Facet,
				Count: c.Count,
				Empty: c.Empty,
			})
		}
		return nil, output, nil
	}
}
