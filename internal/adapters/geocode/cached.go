package geocode

import (
	"container/list"
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/ports"
)

// CachedGeocoder wraps a provider with a cache keyed by the exact address
// string. Repeated calls with the same string never re-query the provider,
// whether the first call resolved or not: unresolvable addresses are
// remembered in a bounded in-process set.
//
// Provider failures are collapsed into ErrAddressNotFound: an address that
// cannot be resolved right now is indistinguishable, for scoring purposes,
// from one that does not exist.
type CachedGeocoder struct {
	provider ports.Geocoder
	cache    ports.GeocodeCache
	misses   *negativeCache
}

func NewCachedGeocoder(provider ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{
		provider: provider,
		cache:    cache,
		misses:   newNegativeCache(1000),
	}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, ports.ErrAddressNotFound
	}

	if g.misses.contains(address) {
		return domain.Coordinates{}, ports.ErrAddressNotFound
	}

	if g.cache != nil {
		coords, ok, err := g.cache.Get(ctx, address)
		if err != nil {
			// Cache trouble must not take geocoding down; fall through
			// to the provider.
			log.Printf("geocode cache read failed: addr=%q err=%v", address, err)
		} else if ok {
			return coords, nil
		}
	}

	coords, err := g.provider.Geocode(ctx, address)
	if err != nil {
		if !errors.Is(err, ports.ErrAddressNotFound) {
			log.Printf("geocode provider failed: addr=%q err=%v", address, err)
		}
		g.misses.add(address)
		return domain.Coordinates{}, ports.ErrAddressNotFound
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, address, coords); err != nil {
			log.Printf("geocode cache write failed: addr=%q err=%v", address, err)
		}
	}

	return coords, nil
}

// negativeCache is a bounded LRU set of addresses the provider could not
// resolve. Kept in-process: a miss is cheap to rediscover after a restart,
// and a stale miss heals once the entry is evicted.
type negativeCache struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List
	entries map[string]*list.Element
}

func newNegativeCache(maxSize int) *negativeCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &negativeCache{
		maxSize: maxSize,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

func (c *negativeCache) contains(address string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[address]
	if ok {
		c.order.MoveToFront(el)
	}
	return ok
}

func (c *negativeCache) add(address string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[address]; ok {
		c.order.MoveToFront(el)
		return
	}

	c.entries[address] = c.order.PushFront(address)

	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(string))
		}
	}
}
