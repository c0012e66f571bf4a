// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/usestring/nrql-mcp/pkg/client"
	"github.com/usestring/nrql-mcp/pkg/jsoncompact"
)

// Tool output defaults
const (
	DefaultQueryMaxResultsValue = 1000
	DefaultJQCacheMaxItemsValue = 128
)

// Config holds all configuration for the MCP server.
type Config struct {
	APIKey    string // NEW_RELIC_API_KEY
	APIURL    string // NEW_RELIC_API_URL, default client.DefaultAPIURL
	APIFormat string // NEW_RELIC_API_FORMAT, default "json"

	InsightsQueryKey  string // NEW_RELIC_INSIGHTS_API_KEY
	InsightsAccountID string // NEW_RELIC_INSIGHTS_ACCOUNT_ID
	InsightsAPIURL    string // NEW_RELIC_INSIGHTS_API_URL, default client.DefaultInsightsURL

	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 10000ms (10s)
	JQCacheMaxItems   int           // JQ_CACHE_MAX_ITEMS, default 128
	QueryMaxResults   int           // QUERY_MAX_RESULTS, default 1000

	// Compaction defaults for tool output
	CompactMaxArrayItems int // COMPACT_MAX_ARRAY_ITEMS
	CompactMaxStringLen  int // COMPACT_MAX_STRING_LEN
	CompactMaxDepth      int // COMPACT_MAX_DEPTH

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
// Credentials are not required here; tools that need them report their absence.
func Load() *Config {
	return &Config{
		APIKey:    getEnvString("NEW_RELIC_API_KEY", ""),
		APIURL:    getEnvString("NEW_RELIC_API_URL", client.DefaultAPIURL),
		APIFormat: getEnvString("NEW_RELIC_API_FORMAT", string(client.FormatJSON)),

		InsightsQueryKey:  getEnvString("NEW_RELIC_INSIGHTS_API_KEY", ""),
		InsightsAccountID: getEnvString("NEW_RELIC_INSIGHTS_ACCOUNT_ID", ""),
		InsightsAPIURL:    getEnvString("NEW_RELIC_INSIGHTS_API_URL", client.DefaultInsightsURL),

		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 10000),
		JQCacheMaxItems:   getEnvInt("JQ_CACHE_MAX_ITEMS", DefaultJQCacheMaxItemsValue),
		QueryMaxResults:   getEnvInt("QUERY_MAX_RESULTS", DefaultQueryMaxResultsValue),

		CompactMaxArrayItems: getEnvInt("COMPACT_MAX_ARRAY_ITEMS", jsoncompact.DefaultMaxArrayItems),
		CompactMaxStringLen:  getEnvInt("COMPACT_MAX_STRING_LEN", jsoncompact.DefaultMaxStringLen),
		CompactMaxDepth:      getEnvInt("COMPACT_MAX_DEPTH", jsoncompact.DefaultMaxDepth),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// CompactOptions returns the compaction settings for tool output.
func (c *Config) CompactOptions() *jsoncompact.Options {
	return &jsoncompact.Options{
		MaxArrayItems: c.CompactMaxArrayItems,
		MaxStringLen:  c.CompactMaxStringLen,
		MaxDepth:      c.CompactMaxDepth,
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
