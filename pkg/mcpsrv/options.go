package mcpsrv

import (
	"context"
	"net/http"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/nrql-mcp/internal/config"
)

// serverConfig holds configuration built from options.
type serverConfig struct {
	config     *config.Config
	httpClient *http.Client

	apiKey            string
	insightsQueryKey  string
	insightsAccountID string

	logLevel  string
	logFile   string
	logFormat string

	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	toolRegistrations         []func(*mcp.Server)
	promptRegistrations       []func(*mcp.Server)
	deferredToolRegistrations []func(*mcp.Server, *Deps) // built once Deps exist
}

// Option configures the server.
type Option func(*serverConfig)

// WithLogLevel sets the log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile sets the log file path.
// If empty, logs are written to stderr only.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithLogFormat selects the log handler: text (default) or json.
func WithLogFormat(format string) Option {
	return func(cfg *serverConfig) {
		cfg.logFormat = format
	}
}

// WithAPIKey sets the REST API key, overriding NEW_RELIC_API_KEY.
func WithAPIKey(key string) Option {
	return func(cfg *serverConfig) {
		cfg.apiKey = key
	}
}

// WithInsightsAccount sets the Insights query key and account, overriding
// NEW_RELIC_INSIGHTS_API_KEY and NEW_RELIC_INSIGHTS_ACCOUNT_ID.
func WithInsightsAccount(queryKey, accountID string) Option {
	return func(cfg *serverConfig) {
		cfg.insightsQueryKey = queryKey
		cfg.insightsAccountID = accountID
	}
}

// WithHTTPClient sets the HTTP client used for both New Relic APIs.
// By default a client with HTTP_CLIENT_TIMEOUT_MS as its timeout is used.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *serverConfig) {
		cfg.httpClient = c
	}
}

// WithoutBuiltinTools disables all builtin New Relic tools.
// Use this if you want to register only your own tools.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts disables all builtin prompts.
// Use this if you want to register only your own prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// WithTool registers a custom tool. In is decoded from the call arguments
// and Out is returned as structured content; Out's zero value is checked
// against its inferred output schema at registration.
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.toolRegistrations = append(cfg.toolRegistrations, func(srv *mcp.Server) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a custom tool whose handler is built from Deps once
// the NRQL runner and query engine exist.
//
//	mcpsrv.WithDepsTool(&mcp.Tool{Name: "result_rows"},
//	    func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, RowsInput) (*mcp.CallToolResult, RowsOutput, error) {
//	        return func(ctx context.Context, _ *mcp.CallToolRequest, in RowsInput) (*mcp.CallToolResult, RowsOutput, error) {
//	            res, err := d.Runner.Run(ctx, in.NRQL)
//	            if err != nil {
//	                return nil, RowsOutput{}, err
//	            }
//	            return nil, RowsOutput{Rows: len(res.Insights.Events())}, nil
//	        }
//	    })
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.deferredToolRegistrations = append(cfg.deferredToolRegistrations, func(srv *mcp.Server, deps *Deps) {
			AddTool(srv, tool, builder(deps))
		})
	}
}

// WithPrompt registers a custom prompt alongside (or instead of) check_facet_counts.
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.promptRegistrations = append(cfg.promptRegistrations, func(srv *mcp.Server) {
			srv.AddPrompt(prompt, handler)
		})
	}
}
