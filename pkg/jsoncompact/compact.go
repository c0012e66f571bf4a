// Package jsoncompact shrinks decoded JSON values before they are returned to
// an MCP client. NRQL results can carry thousands of events and long
// attribute strings; compaction keeps the shape while bounding the size.
package jsoncompact

import (
	"fmt"
	"unicode/utf8"
)

// Options controls compaction. A zero field means no limit for that axis.
type Options struct {
	MaxArrayItems int // keep the first N elements of every array
	MaxStringLen  int // truncate strings to N runes
	MaxDepth      int // replace values nested deeper than N levels
}

// Default values for compaction options.
const (
	DefaultMaxArrayItems = 3
	DefaultMaxStringLen  = 500
	DefaultMaxDepth      = 0
)

// DefaultOptions returns the default compaction settings.
func DefaultOptions() *Options {
	return &Options{
		MaxArrayItems: DefaultMaxArrayItems,
		MaxStringLen:  DefaultMaxStringLen,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Stats reports what a compaction pass removed.
type Stats struct {
	ArraysTrimmed    int `json:"arrays_trimmed"`
	ItemsDropped     int `json:"items_dropped"`
	StringsTruncated int `json:"strings_truncated"`
	DepthCuts        int `json:"depth_cuts"`
}

// Changed reports whether anything was removed.
func (s *Stats) Changed() bool {
	return s.ArraysTrimmed+s.StringsTruncated+s.DepthCuts > 0
}

// Value compacts a value already in decoded-JSON form (maps, slices,
// strings, float64, bool, nil). The input is not modified.
func Value(v any, opts *Options) (any, *Stats) {
	if opts == nil {
		opts = DefaultOptions()
	}
	c := &compactor{opts: opts, stats: &Stats{}}
	return c.walk(v, 0), c.stats
}

type compactor struct {
	opts  *Options
	stats *Stats
}

func (c *compactor) walk(v any, depth int) any {
	if c.opts.MaxDepth > 0 && depth >= c.opts.MaxDepth {
		switch v.(type) {
		case []any, map[string]any:
			c.stats.DepthCuts++
			return "[max depth]"
		}
	}

	switch val := v.(type) {
	case []any:
		return c.array(val, depth)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = c.walk(item, depth+1)
		}
		return out
	case string:
		return c.str(val)
	default:
		return v
	}
}

func (c *compactor) array(arr []any, depth int) []any {
	keep := len(arr)
	if c.opts.MaxArrayItems > 0 && keep > c.opts.MaxArrayItems {
		keep = c.opts.MaxArrayItems
	}

	out := make([]any, 0, keep+1)
	for _, item := range arr[:keep] {
		out = append(out, c.walk(item, depth+1))
	}
	if dropped := len(arr) - keep; dropped > 0 {
		c.stats.ArraysTrimmed++
		c.stats.ItemsDropped += dropped
		out = append(out, fmt.Sprintf("... (%d more items)", dropped))
	}
	return out
}

func (c *compactor) str(s string) string {
	limit := c.opts.MaxStringLen
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	c.stats.StringsTruncated++

	// Cut on a rune boundary.
	cut, n := 0, 0
	for i := range s {
		if n == limit {
			cut = i
			break
		}
		n++
	}
	rest := utf8.RuneCountInString(s[cut:])
	return s[:cut] + fmt.Sprintf("... (%d more chars)", rest)
}
