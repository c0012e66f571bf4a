package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/nrql-mcp/pkg/client"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"NEW_RELIC_API_KEY", "NEW_RELIC_API_URL", "NEW_RELIC_API_FORMAT",
		"NEW_RELIC_INSIGHTS_API_KEY", "NEW_RELIC_INSIGHTS_ACCOUNT_ID", "NEW_RELIC_INSIGHTS_API_URL",
		"HTTP_CLIENT_TIMEOUT_MS", "JQ_CACHE_MAX_ITEMS", "QUERY_MAX_RESULTS", "LOG_LEVEL", "LOG_COMPRESS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, client.DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "json", cfg.APIFormat)
	assert.Equal(t, client.DefaultInsightsURL, cfg.InsightsAPIURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPClientTimeout)
	assert.Equal(t, DefaultJQCacheMaxItemsValue, cfg.JQCacheMaxItems)
	assert.Equal(t, DefaultQueryMaxResultsValue, cfg.QueryMaxResults)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogCompress)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("NEW_RELIC_INSIGHTS_API_KEY", "qk")
	t.Setenv("NEW_RELIC_INSIGHTS_ACCOUNT_ID", "432507")
	t.Setenv("NEW_RELIC_INSIGHTS_API_URL", "https://insights-api.newrelic.com/v1")
	t.Setenv("HTTP_CLIENT_TIMEOUT_MS", "2500")
	t.Setenv("QUERY_MAX_RESULTS", "not-a-number")
	t.Setenv("LOG_COMPRESS", "off")
	t.Setenv("COMPACT_MAX_ARRAY_ITEMS", "7")

	cfg := Load()
	assert.Equal(t, "qk", cfg.InsightsQueryKey)
	assert.Equal(t, "432507", cfg.InsightsAccountID)
	assert.Equal(t, "https://insights-api.newrelic.com/v1", cfg.InsightsAPIURL)
	assert.Equal(t, 2500*time.Millisecond, cfg.HTTPClientTimeout)
	assert.Equal(t, DefaultQueryMaxResultsValue, cfg.QueryMaxResults, "invalid ints fall back to the default")
	assert.False(t, cfg.LogCompress)
	assert.Equal(t, 7, cfg.CompactOptions().MaxArrayItems)
}
