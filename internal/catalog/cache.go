package catalog

import (
	"sync"
	"time"
)

// Cache keeps one listing result for a fixed duration. The clock is injected
// so expiry is testable, and invalidation is an explicit call made by whoever
// mutates the catalog.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	cached   *ListResult
	cachedAt time.Time
}

func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{ttl: ttl, now: now}
}

// Get returns the cached result while it is fresh, calling load otherwise.
// Load errors are not cached.
func (c *Cache) Get(load func() (ListResult, error)) (ListResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != nil && c.now().Sub(c.cachedAt) < c.ttl {
		return *c.cached, nil
	}
	res, err := load()
	if err != nil {
		return ListResult{}, err
	}
	c.cached = &res
	c.cachedAt = c.now()
	return res, nil
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}
