package azdo

import (
	"sync"

	"github.com/adoview/pkg/models"
)

// threadCache holds previously fetched thread collections keyed by
// repo/pullRequestID. Entries live for the lifetime of the client; a view
// refresh invalidates explicitly.
type threadCache struct {
	mu      sync.RWMutex
	entries map[string][]models.Thread
}

func newThreadCache() *threadCache {
	return &threadCache{entries: make(map[string][]models.Thread)}
}

func (c *threadCache) get(key string) ([]models.Thread, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	threads, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	// Fresh slice header so callers appending never touch the cached entry.
	out := make([]models.Thread, len(threads))
	copy(out, threads)
	return out, true
}

func (c *threadCache) set(key string, threads []models.Thread) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = threads
}

func (c *threadCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
