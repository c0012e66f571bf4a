package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/nrql-mcp/internal/mcp/tools"
)

// AddTool registers a tool with the same checks the builtin tools get: the
// output type's zero value must pass the schema the SDK infers for it (a nil
// slice marshals as null and fails an "array" schema), and returned errors
// are mapped to coded errors such as NEWRELIC_ERROR or TIMEOUT.
//
// AddTool panics when the output type fails the check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
