package xcache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a bounded TTL cache for computed statistics. A nil *Cache is
// valid and caches nothing, so callers can disable caching via config
// without branching at every call site.
type Cache struct {
	lru *expirable.LRU[string, any]
}

// New returns a cache holding up to size entries for ttl. It returns nil
// when ttl or size is not positive.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 || ttl <= 0 {
		return nil
	}
	return &Cache{
		lru: expirable.NewLRU[string, any](size, nil, ttl),
	}
}

func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(key)
}

func (c *Cache) Set(key string, value any) {
	if c == nil {
		return
	}
	c.lru.Add(key, value)
}
