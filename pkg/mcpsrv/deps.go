package mcpsrv

import (
	"net/http"

	"github.com/usestring/nrql-mcp/internal/config"
	"github.com/usestring/nrql-mcp/internal/mcp/tools"
	"github.com/usestring/nrql-mcp/internal/nrql"
	"github.com/usestring/nrql-mcp/internal/query"
	"github.com/usestring/nrql-mcp/pkg/client"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config     *config.Config
	HTTPClient *http.Client
	Runner     *nrql.Runner
	Query      *query.Engine

	tools *tools.Deps
}

// APIClient returns a fresh REST API client configured from the environment.
// Each call gets its own client so filters never leak between callers.
func (d *Deps) APIClient() (*client.Client, error) {
	return d.tools.APIClient()
}
