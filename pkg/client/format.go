package client

import "strings"

// Format is the wire serialization used for both the requested response
// suffix and the parser selected to decode it.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ParseFormat resolves a format name case-insensitively.
// Unknown names return a *ConfigurationError.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatXML:
		return FormatXML, nil
	default:
		return "", &ConfigurationError{Setting: "format", Value: s}
	}
}

// mediaType returns the Accept header value advertised for the format.
func (f Format) mediaType() string {
	if f == FormatXML {
		return "application/xml"
	}
	return "application/json"
}
