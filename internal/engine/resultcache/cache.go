// Package resultcache holds the last successful analysis per working directory.
package resultcache

import (
	"sync"

	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/zerr"
)

// nilIndex marks the absence of a neighbour in the recency list.
const nilIndex = -1

// node is one slot of the arena. prev and next are arena indices.
type node struct {
	key   domain.WorkingDirectoryKey
	entry domain.CacheEntry
	prev  int
	next  int
}

// Cache is a fixed-capacity LRU map from working directory to its last analysis.
//
// The recency list lives in a preallocated arena addressed by index, so
// touching and evicting never allocate. head is the most recently used slot,
// tail the least recently used one.
type Cache struct {
	mu    sync.Mutex
	index map[domain.WorkingDirectoryKey]int
	arena []node
	free  []int
	head  int
	tail  int
}

// New creates a cache holding at most capacity entries.
func New(capacity int) (*Cache, error) {
	if capacity < 1 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidCacheCapacity, "cannot create result cache"), "capacity", capacity)
	}

	c := &Cache{
		index: make(map[domain.WorkingDirectoryKey]int, capacity),
		arena: make([]node, capacity),
		free:  make([]int, 0, capacity),
		head:  nilIndex,
		tail:  nilIndex,
	}
	for i := capacity - 1; i >= 0; i-- {
		c.free = append(c.free, i)
	}
	return c, nil
}

// Get returns the entry for key and marks it most recently used.
func (c *Cache) Get(key domain.WorkingDirectoryKey) (domain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[key]
	if !ok {
		return domain.CacheEntry{}, false
	}
	c.moveToFront(i)
	return c.arena[i].entry, true
}

// Put stores entry under key, replacing any previous entry.
// When the cache is full the least recently used entry is evicted.
func (c *Cache) Put(key domain.WorkingDirectoryKey, entry domain.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putLocked(key, entry)
}

// PutIfNewer stores entry unless the entry already held for key was produced
// at the same time or later. It reports whether entry was stored.
func (c *Cache) PutIfNewer(key domain.WorkingDirectoryKey, entry domain.CacheEntry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.index[key]; ok && !entry.ProducedAt.After(c.arena[i].entry.ProducedAt) {
		c.moveToFront(i)
		return false
	}
	c.putLocked(key, entry)
	return true
}

func (c *Cache) putLocked(key domain.WorkingDirectoryKey, entry domain.CacheEntry) {
	if i, ok := c.index[key]; ok {
		c.arena[i].entry = entry
		c.moveToFront(i)
		return
	}

	if len(c.free) == 0 {
		c.evict()
	}

	i := c.free[len(c.free)-1]
	c.free = c.free[:len(c.free)-1]

	c.arena[i] = node{key: key, entry: entry, prev: nilIndex, next: nilIndex}
	c.index[key] = i
	c.pushFront(i)
}

// Len returns the number of entries currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Capacity returns the maximum number of entries.
func (c *Cache) Capacity() int {
	return len(c.arena)
}

// Entries returns a snapshot ordered from most to least recently used.
// It does not count as access.
func (c *Cache) Entries() []domain.StoredEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.StoredEntry, 0, len(c.index))
	for i := c.head; i != nilIndex; i = c.arena[i].next {
		out = append(out, domain.StoredEntry{Key: c.arena[i].key, Entry: c.arena[i].entry})
	}
	return out
}

// Restore loads entries ordered from most to least recently used, as returned by Entries.
// Entries beyond capacity are ignored.
func (c *Cache) Restore(entries []domain.StoredEntry) {
	limit := min(len(entries), c.Capacity())
	for i := limit - 1; i >= 0; i-- {
		c.Put(entries[i].Key, entries[i].Entry)
	}
}

func (c *Cache) evict() {
	if c.tail == nilIndex {
		return
	}
	c.release(c.tail)
}

func (c *Cache) release(i int) {
	c.unlink(i)
	delete(c.index, c.arena[i].key)
	c.arena[i] = node{prev: nilIndex, next: nilIndex}
	c.free = append(c.free, i)
}

func (c *Cache) moveToFront(i int) {
	if c.head == i {
		return
	}
	c.unlink(i)
	c.pushFront(i)
}

func (c *Cache) pushFront(i int) {
	c.arena[i].prev = nilIndex
	c.arena[i].next = c.head
	if c.head != nilIndex {
		c.arena[c.head].prev = i
	}
	c.head = i
	if c.tail == nilIndex {
		c.tail = i
	}
}

func (c *Cache) unlink(i int) {
	n := &c.arena[i]
	if n.prev != nilIndex {
		c.arena[n.prev].next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nilIndex {
		c.arena[n.next].prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev = nilIndex
	n.next = nilIndex
}
