package client

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/antchfx/xmlquery"
)

// ResponseParser decodes a raw response body into a structured value.
// Implementations are stateless and safe for concurrent use.
type ResponseParser interface {
	Parse(resp *Response) (any, error)
}

// JSONParser decodes JSON bodies into the generic encoding/json
// representation (map[string]any, []any, float64, string, bool, nil).
type JSONParser struct{}

// Parse decodes the body as JSON.
func (JSONParser) Parse(resp *Response) (any, error) {
	var v any
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		return nil, &DecodeError{Format: FormatJSON, Err: err}
	}
	return v, nil
}

// XMLParser decodes XML bodies into an xmlquery document tree.
// The returned value is a *xmlquery.Node of type DocumentNode.
type XMLParser struct{}

var errNoRootElement = errors.New("document has no root element")

// Parse decodes the body as an XML document.
func (XMLParser) Parse(resp *Response) (any, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, &DecodeError{Format: FormatXML, Err: err}
	}
	if !hasRootElement(doc) {
		return nil, &DecodeError{Format: FormatXML, Err: errNoRootElement}
	}
	return doc, nil
}

func hasRootElement(doc *xmlquery.Node) bool {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}

// ParserFor returns the parser bound to a format.
func ParserFor(f Format) (ResponseParser, error) {
	switch f {
	case FormatJSON:
		return JSONParser{}, nil
	case FormatXML:
		return XMLParser{}, nil
	default:
		return nil, &ConfigurationError{Setting: "format", Value: string(f)}
	}
}
