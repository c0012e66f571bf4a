package tools

import (
	"github.com/usestring/nrql-mcp/internal/query"
	"github.com/usestring/nrql-mcp/pkg/jsoncompact"
	"github.com/usestring/nrql-mcp/pkg/types"
)

// Expression modes reported in types.Extraction.
const (
	modeJQ    = "jq"
	modeXPath = "xpath"
)

// wantCompact resolves an optional compact flag; compaction is on by default.
func wantCompact(flag *bool) bool {
	return flag == nil || *flag
}

// shapeData compacts a decoded value when requested.
func (d *Deps) shapeData(v any, compact bool) (any, *types.Compaction) {
	if !compact {
		return v, nil
	}
	out, stats := jsoncompact.Value(v, d.Config.CompactOptions())
	if !stats.Changed() {
		return out, nil
	}
	return out, &types.Compaction{
		ArraysTrimmed:    stats.ArraysTrimmed,
		ItemsDropped:     stats.ItemsDropped,
		StringsTruncated: stats.StringsTruncated,
		DepthCuts:        stats.DepthCuts,
	}
}

func toExtraction(mode, expression string, r *query.Result) *types.Extraction {
	return &types.Extraction{
		Mode:       mode,
		Expression: expression,
		Values:     r.Values,
		Errors:     r.Errors,
		RawCount:   r.RawCount,
		Truncated:  r.Truncated,
	}
}
