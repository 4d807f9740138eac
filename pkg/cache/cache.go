package cache

import (
	"container/list"
	"sync"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a concurrency safe map that holds at most capacity entries, evicting the oldest insert first.
// A capacity <= 0 never evicts.
type Cache[K comparable, V any] struct {
	mu       sync.RWMutex
	capacity int
	entries  map[K]*list.Element
	order    *list.List
}

func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		capacity: capacity,
		entries:  make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Set stores value under key. Overwriting a key keeps its original position in the eviction order.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value = entry[K, V]{key: key, value: value}
		return
	}

	c.entries[key] = c.order.PushBack(entry[K, V]{key: key, value: value})

	for c.capacity > 0 && c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(entry[K, V]).key)
	}
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.order.Remove(el)
		delete(c.entries, key)
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	el, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return el.Value.(entry[K, V]).value, true
}

// GetOrSet returns the cached value for key, computing and storing it with fn on a miss
func (c *Cache[K, V]) GetOrSet(key K, fn func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	v := fn()
	c.Set(key, v)
	return v
}

func (c *Cache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the keys oldest first
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(entry[K, V]).key)
	}
	return keys
}
