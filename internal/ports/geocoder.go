package ports

import (
	"context"
	"errors"

	"rental-dispatch-service/internal/domain"
)

// ErrAddressNotFound reports that an address could not be resolved to
// coordinates. Callers must treat it as "cannot evaluate distance" and
// degrade (skip the stop or driver), never fail the whole request.
var ErrAddressNotFound = errors.New("address not found")

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	// Geocode resolves an address. Returns ErrAddressNotFound for empty
	// addresses and for addresses the provider cannot resolve.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// GeocodeCache is a boundary for caching geocode results. Keys are the exact
// address string as supplied by callers: case-sensitive, no normalization.
type GeocodeCache interface {
	// Get returns the cached coordinates and whether the address was present.
	Get(ctx context.Context, address string) (domain.Coordinates, bool, error)
	// Put stores coordinates for an address.
	Put(ctx context.Context, address string, coords domain.Coordinates) error
}
