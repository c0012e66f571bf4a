package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/nrql-mcp/internal/config"
	"github.com/usestring/nrql-mcp/internal/mcp/tools"
	"github.com/usestring/nrql-mcp/internal/nrql"
	"github.com/usestring/nrql-mcp/internal/query"
)

func connect(t *testing.T, s *Server) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	ss, err := s.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	c := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := c.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"facets":[{"name":"StressTransactionError","results":[{"count":3}]}]}`))
	}))
	t.Cleanup(srv.Close)

	deps := &tools.Deps{
		Config:     &config.Config{QueryMaxResults: 10, CompactMaxArrayItems: 3},
		HTTPClient: srv.Client(),
		Runner:     nrql.NewRunner(nrql.Config{QueryKey: "qk", AccountID: "1", BaseURL: srv.URL}),
		Query:      query.NewEngine(nil),
	}
	s, err := NewServer(deps, WithBuiltinTools(), WithBuiltinPrompts())
	require.NoError(t, err)
	return s
}

func TestNewServer_RequiresDeps(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)

	_, err = NewServer(&tools.Deps{Config: &config.Config{}})
	assert.Error(t, err)
}

func TestServer_ListsToolsAndPrompts(t *testing.T) {
	cs := connect(t, newTestServer(t))
	ctx := context.Background()

	toolList, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range toolList.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		tools.ToolNameInsightsQuery,
		tools.ToolNameAPIRequest,
		tools.ToolNameCompareFacetCounts,
	}, names)

	promptList, err := cs.ListPrompts(ctx, nil)
	require.NoError(t, err)
	require.Len(t, promptList.Prompts, 1)
	assert.Equal(t, "check_facet_counts", promptList.Prompts[0].Name)
}

func TestServer_CallTool(t *testing.T) {
	cs := connect(t, newTestServer(t))
	ctx := context.Background()

	res, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      tools.ToolNameInsightsQuery,
		Arguments: map[string]any{"nrql": "SELECT count(*) FROM Transaction FACET errorType", "jq": ".facets[0].results[0].count"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.NotNil(t, res.StructuredContent)

	res, err = cs.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      tools.ToolNameAPIRequest,
		Arguments: map[string]any{"path": "/applications"},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, tools.ErrCodeConfig)
}
