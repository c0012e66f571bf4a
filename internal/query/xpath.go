package query

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// XPath evaluates expression against a parsed XML document and returns the
// trimmed inner text of each matching node. Empty texts are skipped.
func (e *Engine) XPath(doc *xmlquery.Node, expression string, maxResults int) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("no XML document to query")
	}

	nodes, err := xmlquery.QueryAll(doc, expression)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression: %w", err)
	}

	result := &Result{Values: make([]any, 0)}
	for _, node := range nodes {
		text := strings.TrimSpace(node.InnerText())
		if text == "" {
			continue
		}
		result.RawCount++
		if maxResults > 0 && len(result.Values) >= maxResults {
			result.Truncated = true
			continue
		}
		result.Values = append(result.Values, text)
	}
	return result, nil
}
