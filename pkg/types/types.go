// Package types provides the output types of the nrql-mcp tools.
// These types are used across multiple packages and are designed for external consumption.
package types

// Extraction holds the values a JQ or XPath expression produced.
type Extraction struct {
	Mode       string   `json:"mode"` // "jq" or "xpath"
	Expression string   `json:"expression"`
	Values     []any    `json:"values"`
	Errors     []string `json:"errors,omitempty"`
	RawCount   int      `json:"raw_count"`
	Truncated  bool     `json:"truncated,omitempty"`
}

// Compaction reports what was trimmed from Data before it was returned.
type Compaction struct {
	ArraysTrimmed    int `json:"arrays_trimmed"`
	ItemsDropped     int `json:"items_dropped"`
	StringsTruncated int `json:"strings_truncated"`
	DepthCuts        int `json:"depth_cuts,omitempty"`
}
