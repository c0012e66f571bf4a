// Package cache provides caching utilities for the MCP server.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/itchyny/gojq"
)

// CodeCache provides thread-safe LRU caching of compiled JQ programs keyed
// by their source expression.
type CodeCache struct {
	cache *lru.Cache[string, *gojq.Code]
}

// NewCodeCache creates a new LRU cache with the specified maximum number of items.
func NewCodeCache(maxItems int) (*CodeCache, error) {
	c, err := lru.New[string, *gojq.Code](maxItems)
	if err != nil {
		return nil, err
	}
	return &CodeCache{cache: c}, nil
}

// Get returns the compiled program for expr, if present.
func (c *CodeCache) Get(expr string) (*gojq.Code, bool) {
	return c.cache.Get(expr)
}

// Put stores a compiled program.
func (c *CodeCache) Put(expr string, code *gojq.Code) {
	c.cache.Add(expr, code)
}

// Len returns the current number of items in the cache.
func (c *CodeCache) Len() int {
	return c.cache.Len()
}
