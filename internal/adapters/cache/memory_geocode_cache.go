package cache

import (
	"container/list"
	"context"
	"sync"

	"rental-dispatch-service/internal/domain"
)

// MemoryGeocodeCache is a bounded in-process LRU cache from address strings
// to coordinates. Safe for concurrent use: geocode results are idempotent and
// keyed by an immutable string.
type MemoryGeocodeCache struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List
	entries map[string]*list.Element
}

type memoryEntry struct {
	address string
	coords  domain.Coordinates
}

func NewMemoryGeocodeCache(maxSize int) *MemoryGeocodeCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &MemoryGeocodeCache{
		maxSize: maxSize,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

func (c *MemoryGeocodeCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[address]
	if !ok {
		return domain.Coordinates{}, false, nil
	}
	c.order.MoveToFront(el)
	return el.Value.(*memoryEntry).coords, true, nil
}

func (c *MemoryGeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[address]; ok {
		el.Value.(*memoryEntry).coords = coords
		c.order.MoveToFront(el)
		return nil
	}

	c.entries[address] = c.order.PushFront(&memoryEntry{address: address, coords: coords})

	// Evict the least recently used entry once over capacity.
	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*memoryEntry).address)
		}
	}

	return nil
}

// Len returns the number of cached addresses.
func (c *MemoryGeocodeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
