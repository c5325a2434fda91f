package internal

// LRU is a small least recently used cache. Backends keep rendered text and
// image textures in one so repeated frames do not rebuild them.
type LRU[K comparable, V any] struct {
	items   map[K]V
	order   []K // least recently used first
	maxSize int
	onEvict func(K, V)
}

// NewLRU creates a cache holding at most maxSize entries. onEvict, if not
// nil, is called for every entry that leaves the cache.
func NewLRU[K comparable, V any](maxSize int, onEvict func(K, V)) *LRU[K, V] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRU[K, V]{
		items:   make(map[K]V, maxSize),
		order:   make([]K, 0, maxSize),
		maxSize: maxSize,
		onEvict: onEvict,
	}
}

// Get returns the entry for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	v, ok := c.items[key]
	if ok {
		c.touch(key)
	}
	return v, ok
}

// Set stores value, evicting the least recently used entry when full.
// Replacing an existing value evicts the old one.
func (c *LRU[K, V]) Set(key K, value V) {
	if old, ok := c.items[key]; ok {
		c.items[key] = value
		c.touch(key)
		if c.onEvict != nil {
			c.onEvict(key, old)
		}
		return
	}

	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}
	c.items[key] = value
	c.order = append(c.order, key)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return len(c.order)
}

// Purge evicts every entry.
func (c *LRU[K, V]) Purge() {
	for _, k := range c.order {
		if c.onEvict != nil {
			c.onEvict(k, c.items[k])
		}
	}
	clear(c.items)
	c.order = c.order[:0]
}

func (c *LRU[K, V]) touch(key K) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *LRU[K, V]) evictOldest() {
	oldest := c.order[0]
	c.order = c.order[1:]
	v := c.items[oldest]
	delete(c.items, oldest)
	if c.onEvict != nil {
		c.onEvict(oldest, v)
	}
}
