// Package contenttype classifies New Relic API response bodies by media type.
package contenttype

import (
	"bytes"
	"mime"
	"strings"
)

// Category represents a broad content-type classification.
type Category string

const (
	JSON    Category = "json"
	XML     Category = "xml"
	HTML    Category = "html"
	Text    Category = "text"
	Unknown Category = "unknown"
)

// Classify returns the broad content category for a content-type header value.
// Parameters (charset etc.) are stripped with mime.ParseMediaType; malformed
// values fall back to a lowercase comparison. Empty values are Unknown.
func Classify(contentType string) Category {
	if contentType == "" {
		return Unknown
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case strings.Contains(mediaType, "json"):
		return JSON
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return HTML
	case strings.Contains(mediaType, "xml"):
		return XML
	case strings.HasPrefix(mediaType, "text/"):
		return Text
	}
	return Unknown
}

// Sniff guesses a category from the first non-space byte of a body.
// It is used when the server sent no usable Content-Type.
func Sniff(body []byte) Category {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Unknown
	}
	switch trimmed[0] {
	case '{', '[':
		return JSON
	case '<':
		if hasPrefixFold(trimmed, "<html") || hasPrefixFold(trimmed, "<!doctype html") {
			return HTML
		}
		return XML
	}
	return Text
}

func hasPrefixFold(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && strings.EqualFold(string(b[:len(prefix)]), prefix)
}

// Detect classifies by header first and falls back to Sniff for Unknown and
// generic text types.
func Detect(contentType string, body []byte) Category {
	cat := Classify(contentType)
	if cat == Unknown || cat == Text {
		if sniffed := Sniff(body); sniffed != Unknown {
			return sniffed
		}
	}
	return cat
}
