package cache

import "sync"

// MemCache is a map-backed SummaryCache for tests and single-shot runs
// that should not persist anything.
type MemCache struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemCache() *MemCache {
	return &MemCache{
		items: make(map[string]string),
	}
}

func (c *MemCache) Get(key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, exists := c.items[key]
	return value, exists, nil
}

func (c *MemCache) Put(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = value
	return nil
}

func (c *MemCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
