package merge

import (
	"context"
	"sync"
	"time"

	"asset-diff/core/tree"

	"golang.org/x/sync/singleflight"
)

// cachedDocument is a parsed document and the time it was loaded.
type cachedDocument struct {
	node   *tree.Node
	loaded time.Time
}

// documentCache holds parsed storage documents keyed by object key. Trees are
// shared between merges and must not be modified.
type documentCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedDocument
	sf      singleflight.Group
}

func newDocumentCache(ttl time.Duration) *documentCache {
	return &documentCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedDocument),
	}
}

func (c *documentCache) lookup(key string) (*tree.Node, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().Sub(entry.loaded) > c.ttl {
		return nil, false
	}
	return entry.node, true
}

// Get returns the cached tree for key or loads it. Concurrent loads of the
// same key share one call to load. The boolean reports a cache hit.
func (c *documentCache) Get(ctx context.Context, key string, load func(context.Context) (*tree.Node, error)) (*tree.Node, bool, error) {
	if node, ok := c.lookup(key); ok {
		return node, true, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after winning the flight
		if node, ok := c.lookup(key); ok {
			return node, nil
		}

		node, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = cachedDocument{node: node, loaded: c.now()}
			c.mu.Unlock()
		}
		return node, nil
	})
	if err != nil {
		return nil, false, err
	}
	return result.(*tree.Node), false, nil
}

// Invalidate drops key from the cache.
func (c *documentCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
