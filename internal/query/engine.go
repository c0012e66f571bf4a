// Package query extracts values from decoded New Relic responses with JQ
// (JSON bodies) or XPath (XML bodies).
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/nrql-mcp/internal/cache"
)

// Engine executes JQ and XPath expressions. Compiled JQ programs are reused
// through an optional LRU cache.
type Engine struct {
	codes *cache.CodeCache
}

// NewEngine creates a query engine. codes may be nil to disable caching.
func NewEngine(codes *cache.CodeCache) *Engine {
	return &Engine{codes: codes}
}

// Result contains the values an expression produced.
type Result struct {
	Values    []any    `json:"values"`
	Errors    []string `json:"errors,omitempty"` // runtime errors, e.g. iterating over null
	RawCount  int      `json:"raw_count"`        // values before deduplication and truncation
	Truncated bool     `json:"truncated,omitempty"`
}

// Compile parses and compiles a JQ expression, consulting the cache first.
func (e *Engine) Compile(expression string) (*gojq.Code, error) {
	if e.codes != nil {
		if code, ok := e.codes.Get(expression); ok {
			return code, nil
		}
	}

	parsed, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	if e.codes != nil {
		e.codes.Put(expression, code)
	}
	return code, nil
}

// ValidateExpression checks that a JQ expression compiles without running it.
func (e *Engine) ValidateExpression(expression string) error {
	_, err := e.Compile(expression)
	return err
}

// JQ runs expression against input, which must be in decoded-JSON form
// (as produced by json.Unmarshal into any). Null outputs are skipped.
// maxResults <= 0 means unlimited.
func (e *Engine) JQ(input any, expression string, deduplicate bool, maxResults int) (*Result, error) {
	code, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}

	result := &Result{Values: make([]any, 0)}
	seen := make(map[string]bool)
	iter := code.Run(input)

	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			result.Errors = append(result.Errors, formatJQError(err))
			continue
		}
		if v == nil {
			continue
		}

		result.RawCount++
		if deduplicate {
			key := valueKey(v)
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		if maxResults > 0 && len(result.Values) >= maxResults {
			result.Truncated = true
			break
		}
		result.Values = append(result.Values, v)
	}

	return result, nil
}

// formatJQError decorates runtime JQ errors with hints about the NRQL
// response shape. gojq runtime errors are untyped, so matching is textual.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	msg := err.Error()
	var hint string
	switch {
	case strings.Contains(msg, "cannot iterate over: null"):
		hint = " (the path may not exist; facet queries return .facets, others return .results)"
	case strings.Contains(msg, "cannot index") && strings.Contains(msg, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(msg, "object") && strings.Contains(msg, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(msg, "array") && strings.Contains(msg, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}
	return msg + hint
}

func valueKey(v any) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case float64, int:
		return fmt.Sprintf("n:%v", val)
	case bool:
		return fmt.Sprintf("b:%v", val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("?:%v", val)
		}
		return "j:" + string(b)
	}
}
