// internal/cache/lru.go
//
// Tiny LRU cache used by the site service to store rendered page
// documents.  Rendering is deterministic, so a page keyed by
// slug + updated_at never goes stale; LRU pressure is the only eviction.
// No external deps; good for a few thousand entries.
package cache

import (
	"container/list"
	"sync"
)

// Pages is a concurrency-safe least-recently-used cache of rendered HTML
// documents keyed by string.
type Pages struct {
	mu   sync.Mutex
	cap  int
	ll   *list.List
	dict map[string]*list.Element
}

type pageEntry struct {
	key  string
	html string
}

// NewPages returns a page cache with the given capacity.  Capacity 0 or
// below disables caching: Get always misses and Add is a no-op, matching
// the `cache.page_entries: 0` configuration contract.
func NewPages(capacity int) *Pages {
	if capacity < 1 {
		capacity = 0
	}
	return &Pages{
		cap:  capacity,
		ll:   list.New(),
		dict: make(map[string]*list.Element, capacity),
	}
}

// Get retrieves a document and marks it MRU.
func (c *Pages) Get(key string) (html string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, hit := c.dict[key]; hit {
		c.ll.MoveToFront(ele)
		return ele.Value.(pageEntry).html, true
	}
	return "", false
}

// Add inserts or updates a document, evicting the LRU entry on overflow.
func (c *Pages) Add(key, html string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cap == 0 {
		return
	}
	if ele, hit := c.dict[key]; hit {
		ele.Value = pageEntry{key, html}
		c.ll.MoveToFront(ele)
		return
	}
	ele := c.ll.PushFront(pageEntry{key, html})
	c.dict[key] = ele
	if c.ll.Len() > c.cap {
		last := c.ll.Back()
		c.ll.Remove(last)
		delete(c.dict, last.Value.(pageEntry).key)
	}
}

// Len reports current size.
func (c *Pages) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
