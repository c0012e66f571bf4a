package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/nrql-mcp/pkg/mcpsrv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration is loaded from environment variables:
	// - NEW_RELIC_INSIGHTS_API_KEY, NEW_RELIC_INSIGHTS_ACCOUNT_ID: Insights query access
	// - NEW_RELIC_API_KEY: REST API (v2) access
	// - NEW_RELIC_API_URL, NEW_RELIC_INSIGHTS_API_URL: override the staging defaults
	// - LOG_LEVEL, LOG_FILE, LOG_FORMAT: logging
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer()
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting nrql MCP server on stdio",
		slog.String("insights_url", server.Deps().Config.InsightsAPIURL),
		slog.Bool("insights_configured", server.Deps().Runner.Configured()))
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
