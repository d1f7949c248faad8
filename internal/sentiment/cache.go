package sentiment

import (
	"context"
	"sync"
)

// Cache memoizes gateway results by input text. Implementations must be safe
// for concurrent use. Lookup errors are treated as misses.
type Cache interface {
	Get(ctx context.Context, text string) (Result, bool)
	Put(ctx context.Context, text string, res Result)
}

type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Result
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]Result{}}
}

func (c *MemoryCache) Get(_ context.Context, text string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res, ok := c.entries[text]
	return res, ok
}

func (c *MemoryCache) Put(_ context.Context, text string, res Result) {
	c.mu.Lock()
	c.entries[text] = res
	c.mu.Unlock()
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
