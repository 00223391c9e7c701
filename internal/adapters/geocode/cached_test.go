package geocode

import (
	"context"
	"errors"
	"testing"

	"rental-dispatch-service/internal/adapters/cache"
	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/ports"
)

func TestCachedGeocoderHitsCacheOnRepeat(t *testing.T) {
	ctx := context.Background()
	provider := NewStaticGeocoder(map[string]domain.Coordinates{
		"1901 W Madison St": {Lat: 33.4461, Lon: -112.0978},
	})
	g := NewCachedGeocoder(provider, cache.NewMemoryGeocodeCache(10))

	first, err := g.Geocode(ctx, "1901 W Madison St")
	if err != nil {
		t.Fatalf("first geocode: %v", err)
	}

	second, err := g.Geocode(ctx, "1901 W Madison St")
	if err != nil {
		t.Fatalf("second geocode: %v", err)
	}

	if first != second {
		t.Fatalf("results diverged: %+v vs %+v", first, second)
	}
	if calls := provider.Calls("1901 W Madison St"); calls != 1 {
		t.Fatalf("provider queried %d times, want 1", calls)
	}
}

func TestCachedGeocoderEmptyAddress(t *testing.T) {
	provider := NewStaticGeocoder(nil)
	g := NewCachedGeocoder(provider, cache.NewMemoryGeocodeCache(10))

	for _, addr := range []string{"", "   "} {
		if _, err := g.Geocode(context.Background(), addr); !errors.Is(err, ports.ErrAddressNotFound) {
			t.Fatalf("addr %q: err = %v, want ErrAddressNotFound", addr, err)
		}
		// Blank addresses never reach the provider.
		if calls := provider.Calls(addr); calls != 0 {
			t.Fatalf("addr %q reached the provider %d times", addr, calls)
		}
	}
}

func TestCachedGeocoderRemembersUnresolvableAddresses(t *testing.T) {
	ctx := context.Background()
	provider := NewStaticGeocoder(nil)
	g := NewCachedGeocoder(provider, cache.NewMemoryGeocodeCache(10))

	for i := 0; i < 3; i++ {
		if _, err := g.Geocode(ctx, "nowhere at all"); !errors.Is(err, ports.ErrAddressNotFound) {
			t.Fatalf("call %d: err = %v, want ErrAddressNotFound", i, err)
		}
	}

	if calls := provider.Calls("nowhere at all"); calls != 1 {
		t.Fatalf("provider queried %d times for the same unresolvable address, want 1", calls)
	}
}

func TestNegativeCacheEvictsLRU(t *testing.T) {
	c := newNegativeCache(2)

	c.add("a")
	c.add("b")
	if !c.contains("a") { // touch a so b is evicted next
		t.Fatal("a should be remembered")
	}
	c.add("c")

	if c.contains("b") {
		t.Fatal("b should have been evicted")
	}
	if !c.contains("a") || !c.contains("c") {
		t.Fatal("a and c should be remembered")
	}
}

func TestCachedGeocoderCollapsesProviderErrors(t *testing.T) {
	g := NewCachedGeocoder(NewStaticGeocoder(nil), cache.NewMemoryGeocodeCache(10))

	_, err := g.Geocode(context.Background(), "somewhere unknown")
	if !errors.Is(err, ports.ErrAddressNotFound) {
		t.Fatalf("err = %v, want ErrAddressNotFound", err)
	}
}

func TestCachedGeocoderNilCache(t *testing.T) {
	provider := NewStaticGeocoder(map[string]domain.Coordinates{
		"addr": {Lat: 1, Lon: 2},
	})
	g := NewCachedGeocoder(provider, nil)

	got, err := g.Geocode(context.Background(), "addr")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if got.Lat != 1 || got.Lon != 2 {
		t.Fatalf("coords = %+v", got)
	}
}
