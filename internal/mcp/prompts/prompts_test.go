package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, cfg *Config, args map[string]string) string {
	t.Helper()
	res, err := HandleCheckFacetCounts(cfg)(context.Background(), &sdkmcp.GetPromptRequest{
		Params: &sdkmcp.GetPromptParams{Name: "check_facet_counts", Arguments: args},
	})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestCheckFacetCounts_Defaults(t *testing.T) {
	text := promptText(t, &Config{AccountID: "432507", InsightsConfigured: true}, nil)

	assert.Contains(t, text, "account `432507`")
	assert.Contains(t, text, `{label: "Transaction"`)
	assert.Contains(t, text, `{label: "TransactionError"`)
	assert.Contains(t, text, "SINCE 1 hour ago")
	assert.NotContains(t, text, "not configured")
}

func TestCheckFacetCounts_Arguments(t *testing.T) {
	text := promptText(t, &Config{}, map[string]string{
		"event_types": "Span, SpanError ,",
		"since":       "2026-10-01 00:00:00",
		"until":       "2026-10-01 01:00:00",
	})

	assert.Contains(t, text, "not configured")
	assert.Contains(t, text, `{label: "Span"`)
	assert.Contains(t, text, `{label: "SpanError"`)
	assert.Contains(t, text, "SINCE '2026-10-01 00:00:00' UNTIL '2026-10-01 01:00:00'")
}

func TestTimeWindow(t *testing.T) {
	assert.Equal(t, "SINCE 1 day ago UNTIL now", timeWindow("1 day ago", "now"))
	assert.Equal(t, "SINCE '2026-10-01'", timeWindow(" 2026-10-01 ", ""))
}
