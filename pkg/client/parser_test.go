package client

import (
	"errors"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParser(t *testing.T) {
	result, err := JSONParser{}.Parse(&Response{Body: []byte(`{"facets":[]}`)})
	require.NoError(t, err)

	obj, ok := result.(map[string]any)
	require.True(t, ok)
	facets, ok := obj["facets"].([]any)
	require.True(t, ok)
	assert.Empty(t, facets)
}

func TestJSONParser_DecodeError(t *testing.T) {
	for _, body := range []string{"", "not json", `{"facets":`} {
		_, err := JSONParser{}.Parse(&Response{Body: []byte(body)})
		var decErr *DecodeError
		require.True(t, errors.As(err, &decErr), "body %q", body)
		assert.Equal(t, FormatJSON, decErr.Format)
	}
}

func TestXMLParser(t *testing.T) {
	result, err := XMLParser{}.Parse(&Response{Body: []byte(`<servers><server><name>web-1</name></server><server><name>web-2</name></server></servers>`)})
	require.NoError(t, err)

	doc := result.(*xmlquery.Node)
	names := xmlquery.Find(doc, "//server/name")
	require.Len(t, names, 2)
	assert.Equal(t, "web-2", names[1].InnerText())
}

func TestXMLParser_DecodeError(t *testing.T) {
	for _, body := range []string{"", "plain text", "<a><b></a>", "<open>"} {
		_, err := XMLParser{}.Parse(&Response{Body: []byte(body)})
		var decErr *DecodeError
		require.True(t, errors.As(err, &decErr), "body %q", body)
		assert.Equal(t, FormatXML, decErr.Format)
	}
}

func TestParserFor(t *testing.T) {
	p, err := ParserFor(FormatJSON)
	require.NoError(t, err)
	assert.IsType(t, JSONParser{}, p)

	p, err = ParserFor(FormatXML)
	require.NoError(t, err)
	assert.IsType(t, XMLParser{}, p)

	_, err = ParserFor(Format("csv"))
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{" xml ", FormatXML, false},
		{"yaml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				var cfgErr *ConfigurationError
				assert.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
