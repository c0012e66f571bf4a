package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"

	"github.com/usestring/nrql-mcp/pkg/contenttype"
)

// ErrorHandler classifies a completed response. It returns nil for success
// and an error (normally *APIError) for failure.
type ErrorHandler interface {
	Handle(resp *Response) error
}

// StatusErrorHandler treats any status outside 200-299 as a failure.
type StatusErrorHandler struct{}

// Handle implements ErrorHandler.
func (StatusErrorHandler) Handle(resp *Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp),
		RawBody:    string(resp.Body),
	}
}

// errorMessage extracts a human-readable message from the body when it can
// be parsed, falling back to the status line.
func errorMessage(resp *Response) string {
	switch contenttype.Detect(resp.Header.Get("Content-Type"), resp.Body) {
	case contenttype.JSON:
		if msg := jsonErrorMessage(resp.Body); msg != "" {
			return msg
		}
	case contenttype.XML:
		if msg := xmlErrorMessage(resp.Body); msg != "" {
			return msg
		}
	case contenttype.HTML:
		if msg := htmlErrorMessage(resp.Body); msg != "" {
			return msg
		}
	}
	return statusText(resp)
}

// jsonErrorMessage understands the v2 shape {"error":{"title":"..."}} as
// well as the flat {"error":"..."} used by Insights.
func jsonErrorMessage(body []byte) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if nested, ok := parsed["error"].(map[string]any); ok {
		if msg := firstString(nested, "title", "message", "detail"); msg != "" {
			return msg
		}
	}
	return firstString(parsed, "error", "message", "detail", "title")
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func xmlErrorMessage(body []byte) string {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	for _, expr := range []string{"//error/title", "//error/message", "//error", "//message"} {
		node, err := xmlquery.Query(doc, expr)
		if err != nil || node == nil {
			continue
		}
		if text := strings.TrimSpace(node.InnerText()); text != "" {
			return text
		}
	}
	return ""
}

// htmlErrorMessage reads the title or first heading of an HTML error page,
// as served by gateways in front of the API.
func htmlErrorMessage(body []byte) string {
	doc, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	for _, expr := range []string{"//title", "//h1"} {
		node := htmlquery.FindOne(doc, expr)
		if node == nil {
			continue
		}
		if text := strings.TrimSpace(htmlquery.InnerText(node)); text != "" {
			return text
		}
	}
	return ""
}

func statusText(resp *Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return fmt.Sprintf("%d %s", resp.StatusCode, text)
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
