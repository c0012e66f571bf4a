package jsoncompact

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const facetResponse = `{
	"facets": [
		{"name": "Ephemeral Sealed", "results": [{"count": 12}]},
		{"name": "Non-Ephemeral Sealed", "results": [{"count": 9}]},
		{"name": "Ephemeral Unsealed", "results": [{"count": 4}]},
		{"name": "Non-Ephemeral Unsealed", "results": [{"count": 1}]},
		{"name": "Unknown", "results": [{"count": 0}]}
	],
	"metadata": {"eventTypes": ["SealedStressTest"]}
}`

func decode(t *testing.T, body string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func TestValue_TrimsFacets(t *testing.T) {
	out, stats := Value(decode(t, facetResponse), &Options{MaxArrayItems: 2})
	parsed := out.(map[string]any)

	facets := parsed["facets"].([]any)
	require.Len(t, facets, 3)
	assert.Equal(t, "Ephemeral Sealed", facets[0].(map[string]any)["name"])
	assert.Equal(t, "... (3 more items)", facets[2])

	assert.Equal(t, 1, stats.ArraysTrimmed)
	assert.Equal(t, 3, stats.ItemsDropped)
	assert.True(t, stats.Changed())
}

func TestValue_WithinLimitsUnchanged(t *testing.T) {
	in := decode(t, `{"results":[{"count":3}]}`)
	out, stats := Value(in, nil)
	assert.Equal(t, in, out)
	assert.False(t, stats.Changed())
}

func TestValue_StringTruncationIsRuneSafe(t *testing.T) {
	s := strings.Repeat("é", 10)
	out, stats := Value(map[string]any{"message": s}, &Options{MaxStringLen: 4})

	got := out.(map[string]any)["message"].(string)
	assert.Equal(t, "éééé... (6 more chars)", got)
	assert.Equal(t, 1, stats.StringsTruncated)
}

func TestValue_MaxDepth(t *testing.T) {
	in := map[string]any{
		"metadata": map[string]any{
			"contents": []any{map[string]any{"function": "count"}},
		},
		"total": float64(5),
	}
	out, stats := Value(in, &Options{MaxDepth: 2})

	m := out.(map[string]any)
	assert.Equal(t, float64(5), m["total"])
	assert.Equal(t, "[max depth]", m["metadata"].(map[string]any)["contents"])
	assert.Equal(t, 1, stats.DepthCuts)
}

func TestValue_DoesNotMutateInput(t *testing.T) {
	in := []any{"a", "b", "c", "d"}
	_, _ = Value(in, &Options{MaxArrayItems: 1})
	assert.Equal(t, []any{"a", "b", "c", "d"}, in)
}
