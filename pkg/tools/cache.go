package tools

import (
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hustlemode/coach/pkg/domain"
)

// Cache holds successful tool results with per-entry expiry on top of LRU
// eviction. Entries never outlive their tool's TTL; identical invocations
// inside the window reuse the stored result.
type Cache struct {
	lru *lru.Cache[string, cacheEntry]
}

type cacheEntry struct {
	data    any
	expires time.Time
}

// NewCache creates a cache bounded to size entries.
func NewCache(size int) (*Cache, error) {
	inner, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	return &Cache{lru: inner}, nil
}

// Get returns the cached data for key, dropping expired entries on the way.
func (c *Cache) Get(key string) (any, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		c.lru.Remove(key)
		return nil, false
	}
	return entry.data, true
}

// Put stores data under key for ttl.
func (c *Cache) Put(key string, data any, ttl time.Duration) {
	c.lru.Add(key, cacheEntry{data: data, expires: time.Now().Add(ttl)})
}

// CacheKey derives the lookup key for an invocation. encoding/json emits map
// keys in sorted order, so semantically identical parameter maps always
// produce the same key.
func CacheKey(inv domain.ToolInvocation) string {
	params, err := json.Marshal(inv.Parameters)
	if err != nil {
		params = []byte(fmt.Sprintf("%v", inv.Parameters))
	}
	return fmt.Sprintf("%s:%s:%s:%s", inv.Tool, inv.UserID, inv.Channel, params)
}
