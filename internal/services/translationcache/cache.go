package translationcache

import (
	"container/list"
	"fmt"
	"hash/fnv"
	"sync"
)

// Cache is a bounded translation cache with least-recently-used eviction.
// Keys are derived from (sourceLang, targetLang, hash of source text), so
// equal inputs always map to the same entry. All operations are safe for
// concurrent use by multiple workers.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
}

type entry struct {
	key         string
	translation string
}

// New creates a cache holding at most capacity entries. A capacity below
// one is raised to one so the cache is always usable.
func New(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// makeKey derives the deterministic cache key for a translation request.
func makeKey(text, sourceLang, targetLang string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return fmt.Sprintf("%s->%s:%x", sourceLang, targetLang, h.Sum64())
}

// Get returns the cached translation for the given text and language
// pair. A hit promotes the entry to most recently used; a miss leaves
// the cache untouched.
func (c *Cache) Get(text, sourceLang, targetLang string) (string, bool) {
	key := makeKey(text, sourceLang, targetLang)

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return "", false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*entry).translation, true
}

// Set stores a translation, overwriting any existing entry for the same
// key. Inserting a new key at capacity evicts exactly one entry: the
// least recently used.
func (c *Cache) Set(text, sourceLang, targetLang, translation string) {
	key := makeKey(text, sourceLang, targetLang)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*entry).translation = translation
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).key)
		}
	}

	c.entries[key] = c.order.PushFront(&entry{key: key, translation: translation})
}

// Clear empties the cache. Concurrent readers see either the full cache
// or the empty one, never a partial state.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element, c.capacity)
	c.order.Init()
}

// Len returns the current number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the fixed maximum number of entries.
func (c *Cache) Capacity() int {
	return c.capacity
}
