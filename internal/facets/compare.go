package facets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/nrql-mcp/internal/nrql"
	"github.com/usestring/nrql-mcp/pkg/client"
)

// ErrNoFacets is returned by FirstCount when the query matched no events.
var ErrNoFacets = errors.New("query returned no facets")

// maxConcurrentQueries bounds the number of NRQL requests in flight per comparison.
const maxConcurrentQueries = 4

// Runner executes a single NRQL query. *nrql.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, query string) (*nrql.Result, error)
}

// LabeledQuery is one side of a comparison.
type LabeledQuery struct {
	Label string `json:"label"`
	NRQL  string `json:"nrql"`
}

// Count is the first facet count a query produced.
type Count struct {
	Label string  `json:"label"`
	NRQL  string  `json:"nrql"`
	Facet string  `json:"facet"`
	Count float64 `json:"count"`
	Empty bool    `json:"empty,omitempty"` // no events matched; Count is 0
}

// Comparison is the outcome of Compare. Counts keep the order of the input.
type Comparison struct {
	Counts []Count `json:"counts"`
	Match  bool    `json:"match"`
}

// FirstCount validates v and returns the name and count of its first facet.
func FirstCount(v any) (string, float64, error) {
	if err := Validate(v); err != nil {
		return "", 0, err
	}
	facets, _ := v.(map[string]any)["facets"].([]any)
	if len(facets) == 0 {
		return "", 0, ErrNoFacets
	}
	first := facets[0].(map[string]any)
	row := first["results"].([]any)[0].(map[string]any)
	return facetName(first["name"]), row["count"].(float64), nil
}

// facetName renders single-attribute facets as-is and multi-attribute facets
// as a comma-separated list.
func facetName(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case []any:
		parts := make([]string, len(n))
		for i, p := range n {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprint(n)
	}
}

// Compare runs every query concurrently and reports whether their first
// facet counts agree. A query that matches no events counts as zero. Any
// other failure aborts the comparison.
func Compare(ctx context.Context, runner Runner, queries []LabeledQuery) (*Comparison, error) {
	if len(queries) < 2 {
		return nil, fmt.Errorf("%w: at least two queries are required, got %d", client.ErrInvalidArgument, len(queries))
	}

	counts := make([]Count, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQueries)

	for i, q := range queries {
		label := q.Label
		if label == "" {
			label = fmt.Sprintf("query %d", i+1)
		}
		g.Go(func() error {
			res, err := runner.Run(ctx, q.NRQL)
			if err != nil {
				return fmt.Errorf("%s: %w", label, err)
			}
			name, n, err := FirstCount(res.Parsed)
			c := Count{Label: label, NRQL: strings.TrimSpace(q.NRQL), Facet: name, Count: n}
			switch {
			case errors.Is(err, ErrNoFacets):
				c.Empty = true
			case err != nil:
				return fmt.Errorf("%s: %w", label, err)
			}
			counts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	match := true
	for _, c := range counts[1:] {
		if c.Count != counts[0].Count {
			match = false
			break
		}
	}
	return &Comparison{Counts: counts, Match: match}, nil
}

// Report renders the comparison as an aligned table followed by the NRQL
// that produced each row.
func (c *Comparison) Report() string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Label\tFacet\tCount")
	for _, row := range c.Counts {
		facet := row.Facet
		if row.Empty {
			facet = "(no events)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Label, facet, formatCount(row.Count))
	}
	_ = tw.Flush()

	if c.Match {
		b.WriteString("\nAll counts match.\n")
	} else {
		b.WriteString("\nWARNING: counts don't match.\n")
	}

	b.WriteString("\nRan NRQL:\n")
	for _, row := range c.Counts {
		fmt.Fprintf(&b, "\n[%s]\n%s\n", row.Label, dedent(row.NRQL))
	}
	return b.String()
}

// formatCount groups thousands and drops the fraction of whole counts.
func formatCount(n float64) string {
	if n == math.Trunc(n) {
		return printer.Sprintf("%d", int64(n))
	}
	return printer.Sprintf("%.2f", n)
}

// dedent strips leading whitespace from every line.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimLeft(l, " \t")
	}
	return strings.Join(lines, "\n")
}
