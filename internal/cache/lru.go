package cache

// lruNode is an entry in the recency list. It carries its key so eviction
// can delete it from the map.
type lruNode[K comparable, V any] struct {
	key   K
	value V
	prev  *lruNode[K, V]
	next  *lruNode[K, V]
}

// LRU is a map bounded to a fixed number of entries. When full, Put evicts
// the least recently used entry.
//
// The head of the list is the most recently used entry, the tail the least.
type LRU[K comparable, V any] struct {
	entries  map[K]*lruNode[K, V]
	head     *lruNode[K, V]
	tail     *lruNode[K, V]
	capacity int

	hits, misses, evictions uint64
}

// NewLRU creates an LRU holding at most capacity entries. A capacity <= 0
// yields a cache that stores nothing.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &LRU[K, V]{
		entries:  make(map[K]*lruNode[K, V], min(capacity, 1<<16)),
		capacity: capacity,
	}
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	node, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.moveToFront(node)
	return node.value, true
}

// Put stores value under key, evicting the oldest entry when full.
func (c *LRU[K, V]) Put(key K, value V) {
	if c.capacity == 0 {
		return
	}
	if node, ok := c.entries[key]; ok {
		node.value = value
		c.moveToFront(node)
		return
	}

	if len(c.entries) >= c.capacity {
		oldest := c.tail
		c.unlink(oldest)
		delete(c.entries, oldest.key)
		c.evictions++
	}

	node := &lruNode[K, V]{key: key, value: value}
	c.pushFront(node)
	c.entries[key] = node
}

// Oldest returns the least recently used key without touching it.
func (c *LRU[K, V]) Oldest() (K, bool) {
	if c.tail == nil {
		var zero K
		return zero, false
	}
	return c.tail.key, true
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	return len(c.entries)
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Clear removes all entries and resets the statistics.
func (c *LRU[K, V]) Clear() {
	clear(c.entries)
	c.head, c.tail = nil, nil
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

func (c *LRU[K, V]) pushFront(node *lruNode[K, V]) {
	node.prev = nil
	node.next = c.head
	if c.head != nil {
		c.head.prev = node
	}
	c.head = node
	if c.tail == nil {
		c.tail = node
	}
}

func (c *LRU[K, V]) moveToFront(node *lruNode[K, V]) {
	if node == c.head {
		return
	}
	c.unlink(node)
	c.pushFront(node)
}

// unlink removes node from the list and clears its links.
func (c *LRU[K, V]) unlink(node *lruNode[K, V]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		c.tail = node.prev
	}
	node.prev = nil
	node.next = nil
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries.
	Capacity int
	// Hits is the number of Get calls that found their key.
	Hits uint64
	// Misses is the number of Get calls that did not.
	Misses uint64
	// HitRate is Hits over all Get calls, 0.0 to 1.0.
	HitRate float64
	// Evictions is the number of entries dropped to make room.
	Evictions uint64
}
