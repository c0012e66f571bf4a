// Package prompts contains MCP prompt implementations for New Relic.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	AccountID          string
	InsightsConfigured bool
}
