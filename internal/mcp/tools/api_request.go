package tools

import (
	"context"
	"net/http"
	"strings"

	"github.com/antchfx/xmlquery"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/nrql-mcp/pkg/client"
	"github.com/usestring/nrql-mcp/pkg/types"
)

// APIRequestInput is the input for newrelic_api_request.
type APIRequestInput struct {
	Path    string            `json:"path" jsonschema:"Resource path without extension, e.g. /applications or /applications/123/metrics"`
	Method  string            `json:"method,omitempty" jsonschema:"HTTP method: GET or HEAD (default: GET)"`
	Format  string            `json:"format,omitempty" jsonschema:"Response format: json or xml (default: NEW_RELIC_API_FORMAT)"`
	Filters map[string]string `json:"filters,omitempty" jsonschema:"Query parameters, e.g. {\"filter[name]\": \"checkout\"}"`
	JQ      string            `json:"jq,omitempty" jsonschema:"JQ expression for json responses"`
	Dedupe  bool              `json:"dedupe,omitempty" jsonschema:"Drop repeated jq values"`
	XPath   string            `json:"xpath,omitempty" jsonschema:"XPath expression for xml responses"`
	Compact *bool             `json:"compact,omitempty" jsonschema:"Trim long arrays and strings in data (default: true)"`
}

// ToolAPIRequest issues a read-only request against the REST API (v2).
func ToolAPIRequest(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input APIRequestInput) (*sdkmcp.CallToolResult, types.APIRequestResponse, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input APIRequestInput) (*sdkmcp.CallToolResult, types.APIRequestResponse, error) {
		if input.Path == "" {
			return nil, types.APIRequestResponse{}, ErrInvalidInput("path is required")
		}
		if input.JQ != "" && input.XPath != "" {
			return nil, types.APIRequestResponse{}, ErrInvalidInput("set either jq or xpath, not both")
		}

		method := strings.ToUpper(input.Method)
		switch method {
		case "":
			method = http.MethodGet
		case http.MethodGet, http.MethodHead:
		default:
			return nil, types.APIRequestResponse{}, ErrInvalidInput("method must be GET or HEAD")
		}

		c, err := d.APIClient()
		if err != nil {
			return nil, types.APIRequestResponse{}, err
		}
		if input.Format != "" {
			if err := c.SetFormat(input.Format); err != nil {
				return nil, types.APIRequestResponse{}, ErrInvalidInput(err.Error())
			}
		}
		switch {
		case input.JQ != "" && c.Format() != client.FormatJSON:
			return nil, types.APIRequestResponse{}, ErrInvalidInput("jq requires format json")
		case input.XPath != "" && c.Format() != client.FormatXML:
			return nil, types.APIRequestResponse{}, ErrInvalidInput("xpath requires format xml")
		}
		if input.JQ != "" {
			if err := d.Query.ValidateExpression(input.JQ); err != nil {
				return nil, types.APIRequestResponse{}, ErrInvalidInput(err.Error())
			}
		}

		for name, value := range input.Filters {
			c.AddFilter(client.NewFilter(name, value))
		}

		resp, err := c.Request(ctx, input.Path, method, nil)
		if err != nil {
			return nil, types.APIRequestResponse{}, err
		}

		output := types.APIRequestResponse{
			URL:        resp.URL,
			StatusCode: resp.StatusCode,
			Format:     string(c.Format()),
			BodyBytes:  len(resp.Body),
		}
		if len(resp.Body) == 0 {
			return nil, output, nil
		}

		parsed, err := c.Parser().Parse(resp)
		if err != nil {
			return nil, types.APIRequestResponse{}, err
		}
		maxResults := d.maxResults(0)

		switch doc := parsed.(type) {
		case *xmlquery.Node:
			if input.XPath != "" {
				extracted, err := d.Query.XPath(doc, input.XPath, maxResults)
				if err != nil {
					return nil, types.APIRequestResponse{}, ErrInvalidInput(err.Error())
				}
				output.Extraction = toExtraction(modeXPath, input.XPath, extracted)
				return nil, output, nil
			}
			output.Data, output.Compaction = d.shapeData(string(resp.Body), wantCompact(input.Compact))
		default:
			if input.JQ != "" {
				extracted, err := d.Query.JQ(doc, input.JQ, input.Dedupe, maxResults)
				if err != nil {
					return nil, types.APIRequestResponse{}, ErrInvalidInput(err.Error())
				}
				output.Extraction = toExtraction(modeJQ, input.JQ, extracted)
				return nil, output, nil
			}
			output.Data, output.Compaction = d.shapeData(doc, wantCompact(input.Compact))
		}
		return nil, output, nil
	}
}
