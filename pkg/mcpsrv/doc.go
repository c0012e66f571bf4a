// Package mcpsrv provides an extensible MCP server for New Relic.
//
// The server exposes NRQL queries against the Insights API, read-only
// requests against the REST API (v2), and a facet count comparison, plus a
// prompt that walks an agent through verifying correlated event counts.
//
// # Basic Usage
//
// Credentials come from the environment (NEW_RELIC_API_KEY,
// NEW_RELIC_INSIGHTS_API_KEY, NEW_RELIC_INSIGHTS_ACCOUNT_ID):
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type SlowInput struct {
//	    App string `json:"app"`
//	}
//
//	type SlowOutput struct {
//	    Rows int `json:"rows"`
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(&mcp.Tool{Name: "slow_transactions"},
//	        func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, SlowInput) (*mcp.CallToolResult, SlowOutput, error) {
//	            return func(ctx context.Context, req *mcp.CallToolRequest, in SlowInput) (*mcp.CallToolResult, SlowOutput, error) {
//	                res, err := d.Runner.Run(ctx, "SELECT * FROM Transaction WHERE duration > 1 AND appName = '"+in.App+"'")
//	                if err != nil {
//	                    return nil, SlowOutput{}, err
//	                }
//	                return nil, SlowOutput{Rows: len(res.Insights.Events())}, nil
//	            }
//	        }),
//	)
//
// # Configuration
//
// Override the environment with options:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithInsightsAccount(queryKey, "432507"),
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/nrql-mcp.log"),
//	)
package mcpsrv
