package geocode

import (
	"context"
	"sync"

	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/ports"
)

// StaticGeocoder resolves addresses from a fixed table. Used in tests in
// place of a network provider; unknown addresses yield ErrAddressNotFound.
type StaticGeocoder struct {
	mu    sync.Mutex
	m     map[string]domain.Coordinates
	calls map[string]int
}

func NewStaticGeocoder(m map[string]domain.Coordinates) *StaticGeocoder {
	cp := make(map[string]domain.Coordinates, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return &StaticGeocoder{m: cp, calls: make(map[string]int)}
}

func (g *StaticGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls[address]++
	c, ok := g.m[address]
	if !ok {
		return domain.Coordinates{}, ports.ErrAddressNotFound
	}
	return c, nil
}

// Calls reports how many times an address was looked up.
func (g *StaticGeocoder) Calls(address string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[address]
}
