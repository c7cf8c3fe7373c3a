package cache

import (
	"sync"
	"time"
)

// Key identifies one upstream search call. Keeping the parameters in separate
// fields means a query containing a separator character can never collide
// with a different page or kind.
type Key struct {
	Query string
	Num   int
	Start int
	Kind  string
}

type entry struct {
	storedAt time.Time
	payload  interface{}
}

// Cache is an in-process TTL cache over upstream search responses. Entries
// expire lazily on read; there is no size bound, which is acceptable for
// low-QPS single-process use.
type Cache struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[Key]entry
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[Key]entry),
	}
}

// Get returns the cached payload for key, or false if no entry exists or the
// entry is older than the TTL. A stale entry is removed on read.
func (c *Cache) Get(key Key) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.items, key)
		return nil, false
	}
	return e.payload, true
}

// Set stores payload under key, overwriting any previous entry.
func (c *Cache) Set(key Key, payload interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{storedAt: c.now(), payload: payload}
}

// Len reports the number of stored entries, including any not yet expired
// lazily.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
