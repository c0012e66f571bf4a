package mcpsrv

import (
	"context"
	"fmt"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/nrql-mcp/internal/cache"
	"github.com/usestring/nrql-mcp/internal/config"
	"github.com/usestring/nrql-mcp/internal/logging"
	"github.com/usestring/nrql-mcp/internal/mcp"
	"github.com/usestring/nrql-mcp/internal/mcp/tools"
	"github.com/usestring/nrql-mcp/internal/nrql"
	"github.com/usestring/nrql-mcp/internal/query"
)

// Server is the New Relic MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin New Relic tools.
//
// Credentials and limits are read from the environment (see internal/config);
// options override them. Missing credentials do not fail startup: the tools
// that need them report CONFIG_ERROR when called.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		config: config.Load(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	applyOverrides(cfg)

	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		Format:     cfg.config.LogFormat,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	codes, err := cache.NewCodeCache(cfg.config.JQCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create jq cache: %w", err)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.config.HTTPClientTimeout}
	}

	runner := nrql.NewRunner(nrql.Config{
		QueryKey:   cfg.config.InsightsQueryKey,
		AccountID:  cfg.config.InsightsAccountID,
		BaseURL:    cfg.config.InsightsAPIURL,
		HTTPClient: httpClient,
		Timeout:    cfg.config.HTTPClientTimeout,
	})
	engine := query.NewEngine(codes)

	toolDeps := &tools.Deps{
		Config:     cfg.config,
		HTTPClient: httpClient,
		Runner:     runner,
		Query:      engine,
	}
	deps := &Deps{
		Config:     cfg.config,
		HTTPClient: httpClient,
		Runner:     runner,
		Query:      engine,
		tools:      toolDeps,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}
	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

func applyOverrides(cfg *serverConfig) {
	c := cfg.config
	if cfg.apiKey != "" {
		c.APIKey = cfg.apiKey
	}
	if cfg.insightsQueryKey != "" {
		c.InsightsQueryKey = cfg.insightsQueryKey
	}
	if cfg.insightsAccountID != "" {
		c.InsightsAccountID = cfg.insightsAccountID
	}
	if cfg.logLevel != "" {
		c.LogLevel = cfg.logLevel
	}
	if cfg.logFile != "" {
		c.LogFile = cfg.logFile
	}
	if cfg.logFormat != "" {
		c.LogFormat = cfg.logFormat
	}
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server, e.g. to connect an in-memory
// transport in tests.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
