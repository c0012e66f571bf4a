package tools

import (
	"net/http"

	"github.com/usestring/nrql-mcp/internal/config"
	"github.com/usestring/nrql-mcp/internal/nrql"
	"github.com/usestring/nrql-mcp/internal/query"
	"github.com/usestring/nrql-mcp/pkg/client"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config     *config.Config
	HTTPClient *http.Client
	Runner     *nrql.Runner
	Query      *query.Engine
}

// APIClient builds a REST API client for a single tool call. A fresh client
// per call keeps one call's filters out of the next.
func (d *Deps) APIClient() (*client.Client, error) {
	if d.Config.APIKey == "" {
		return nil, &CodedError{
			Code:    ErrCodeConfig,
			Message: "NEW_RELIC_API_KEY is not set",
		}
	}

	c := client.New(d.Config.APIKey,
		client.WithBaseURL(d.Config.APIURL),
		client.WithHTTPClient(d.HTTPClient),
	)
	if d.Config.APIFormat != "" {
		if err := c.SetFormat(d.Config.APIFormat); err != nil {
			return nil, WrapClientError(err)
		}
	}
	return c, nil
}

func (d *Deps) maxResults(requested int) int {
	if requested > 0 && requested < d.Config.QueryMaxResults {
		return requested
	}
	return d.Config.QueryMaxResults
}
