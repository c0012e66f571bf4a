// Package nrql runs NRQL queries against the Insights API on behalf of the
// MCP tools.
package nrql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/usestring/nrql-mcp/pkg/client"
)

// ErrNotConfigured is returned when the query key or account id is missing.
var ErrNotConfigured = errors.New("insights query key and account id are required (set NEW_RELIC_INSIGHTS_API_KEY and NEW_RELIC_INSIGHTS_ACCOUNT_ID)")

// Config holds what a Runner needs to reach one Insights account.
type Config struct {
	QueryKey   string
	AccountID  string
	BaseURL    string        // empty uses client.DefaultInsightsURL
	HTTPClient *http.Client  // nil uses http.DefaultClient
	Timeout    time.Duration // per-query timeout; 0 leaves only HTTPClient's own
}

// Runner executes NRQL queries. Each query gets its own InsightsClient, so
// the nrql filter of one caller never leaks into another. Identical queries
// in flight at the same time share a single HTTP request.
type Runner struct {
	cfg   Config
	group singleflight.Group
}

// NewRunner creates a Runner.
func NewRunner(cfg Config) *Runner {
	return &Runner{cfg: cfg}
}

// Result is a decoded Insights response. Parsed and Insights may be shared
// between coalesced callers and must be treated as read-only.
type Result struct {
	Body     []byte
	Parsed   any
	Insights *client.InsightsResult
	Duration time.Duration
	Shared   bool
}

// Configured reports whether credentials are present.
func (r *Runner) Configured() bool {
	return r.cfg.QueryKey != "" && r.cfg.AccountID != ""
}

// AccountID returns the account queries run against.
func (r *Runner) AccountID() string {
	return r.cfg.AccountID
}

// Run executes one NRQL query. Cancelling ctx stops this caller waiting but
// does not abort a request other callers still share.
func (r *Runner) Run(ctx context.Context, nrql string) (*Result, error) {
	if !r.Configured() {
		return nil, ErrNotConfigured
	}
	nrql = strings.TrimSpace(nrql)
	if nrql == "" {
		return nil, fmt.Errorf("%w: nrql is empty", client.ErrInvalidArgument)
	}

	// The request runs detached from ctx under the runner timeout; each
	// caller waits on its own ctx.
	ch := r.group.DoChan(r.cfg.AccountID+"\x00"+nrql, func() (any, error) {
		runCtx := context.WithoutCancel(ctx)
		if r.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, r.cfg.Timeout)
			defer cancel()
		}
		return r.run(runCtx, nrql)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("nrql query: %w", ctx.Err())
	case out := <-ch:
		if out.Err != nil {
			return nil, out.Err
		}
		res := *out.Val.(*Result)
		res.Shared = out.Shared
		return &res, nil
	}
}

func (r *Runner) run(ctx context.Context, nrql string) (*Result, error) {
	start := time.Now()

	ic := client.NewInsights(r.cfg.QueryKey, r.cfg.AccountID, r.clientOptions()...)
	resp, err := ic.Query(ctx, nrql)
	if err != nil {
		return nil, err
	}

	parsed, err := ic.Parser().Parse(resp)
	if err != nil {
		return nil, err
	}
	insights, err := client.DecodeInsights(resp)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	slog.Debug("nrql query completed",
		slog.String("account_id", r.cfg.AccountID),
		slog.Int("facets", len(insights.Facets)),
		slog.Int("results", len(insights.Results)),
		slog.Int64("duration_ms", elapsed.Milliseconds()))

	return &Result{
		Body:     resp.Body,
		Parsed:   parsed,
		Insights: insights,
		Duration: elapsed,
	}, nil
}

func (r *Runner) clientOptions() []client.Option {
	var opts []client.Option
	if r.cfg.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(r.cfg.BaseURL))
	}
	if r.cfg.HTTPClient != nil {
		opts = append(opts, client.WithHTTPClient(r.cfg.HTTPClient))
	}
	return opts
}
