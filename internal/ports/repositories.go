package ports

import (
	"context"
	"errors"

	"rental-dispatch-service/internal/domain"
)

// ErrNotFound reports a failed entity lookup (booking, driver, item,
// warehouse). Surfaced to API callers as 404, never silently defaulted.
var ErrNotFound = errors.New("not found")

// Port: a boundary for retrieving Booking entities from a data source.
type BookingRepository interface {
	// ListBookings returns all bookings with their items.
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	// GetBooking returns one booking by id, or ErrNotFound.
	GetBooking(ctx context.Context, id string) (domain.Booking, error)
	// CreateBooking checks availability and inserts the booking atomically.
	// When the items are unavailable the booking is not created and the
	// returned result carries the conflicts.
	CreateBooking(ctx context.Context, b domain.Booking) (domain.AvailabilityResult, error)
}

type DriverRepository interface {
	ListDrivers(ctx context.Context) ([]domain.Driver, error)
	// GetDriver returns one driver by id, or ErrNotFound.
	GetDriver(ctx context.Context, id string) (domain.Driver, error)
}

type WarehouseRepository interface {
	ListWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	// FirstActiveWarehouse returns the depot used for route optimization,
	// or ErrNotFound when no warehouse is active.
	FirstActiveWarehouse(ctx context.Context) (domain.Warehouse, error)
}

type InventoryRepository interface {
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	// GetItems returns the items found for the given ids, keyed by id.
	// Missing ids are simply absent from the map.
	GetItems(ctx context.Context, ids []string) (map[string]domain.InventoryItem, error)
}
