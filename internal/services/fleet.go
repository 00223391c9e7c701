package services

import (
	"math"
	"sort"
	"time"

	"rental-dispatch-service/internal/domain"
)

// Key used for stops whose booking has no driver assigned yet.
const unassignedKey = "unassigned"

// OptimizeFleet builds a travel-ordered route per driver group for one date:
// deliveries grouped by delivery driver, pickups by pickup driver (falling
// back to the delivery driver), unassigned bookings pooled together. Each
// group is ordered by nearest neighbor from the depot warehouse, with total
// distance and a fixed duration heuristic attached.
//
// Stops use the coordinates stored on the booking; there is no geocoding on
// this path.
func OptimizeFleet(
	date time.Time,
	bookings []domain.Booking,
	drivers []domain.Driver,
	depot domain.Warehouse,
) []domain.OptimizedRoute {
	driversByID := make(map[string]domain.Driver, len(drivers))
	for _, d := range drivers {
		driversByID[d.ID] = d
	}

	groups := make(map[string][]domain.RouteStop)
	groupOrder := make([]string, 0)

	add := func(key string, stop domain.RouteStop) {
		if _, seen := groups[key]; !seen {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], stop)
	}

	for _, b := range bookings {
		if b.Status.Terminal() {
			continue
		}

		if domain.SameDay(b.DeliveryDate, date) {
			key := unassignedKey
			if b.DeliveryDriverID != nil {
				key = *b.DeliveryDriverID
			}
			add(key, fleetStop(b, domain.StopDelivery, b.DeliveryWindow))
		}

		if domain.SameDay(b.PickupDate, date) {
			key := unassignedKey
			switch {
			case b.PickupDriverID != nil:
				key = *b.PickupDriverID
			case b.DeliveryDriverID != nil:
				key = *b.DeliveryDriverID
			}
			add(key, fleetStop(b, domain.StopPickup, b.PickupWindow))
		}
	}

	routes := make([]domain.OptimizedRoute, 0, len(groupOrder))

	for _, key := range groupOrder {
		ordered := NearestNeighborOrder(groups[key], depot.Lat, depot.Lng)
		distanceKm := RouteDistanceKm(ordered, depot.Lat, depot.Lng)

		route := domain.OptimizedRoute{
			TotalStops:      len(ordered),
			TotalDistanceKm: round2(distanceKm),
			EstimatedHours:  round2(EstimateRouteHours(distanceKm, len(ordered))),
			Stops:           ordered,
			WarehouseStart:  depot.Name,
			WarehouseEnd:    depot.Name,
		}

		if key != unassignedKey {
			id := key
			route.DriverID = &id
			name := "Unknown Driver"
			if d, ok := driversByID[key]; ok {
				name = d.Name
			}
			route.DriverName = &name
		}

		routes = append(routes, route)
	}

	// Named drivers first, alphabetically; the unassigned pool last.
	sort.SliceStable(routes, func(i, j int) bool {
		ni, nj := routes[i].DriverName, routes[j].DriverName
		if (ni == nil) != (nj == nil) {
			return nj == nil
		}
		if ni == nil {
			return false
		}
		return *ni < *nj
	})

	return routes
}

func fleetStop(b domain.Booking, stopType domain.StopType, window string) domain.RouteStop {
	return domain.RouteStop{
		BookingID:    b.ID,
		OrderNumber:  b.OrderNumber,
		Address:      b.DeliveryAddress,
		Type:         stopType,
		TimeWindow:   window,
		CustomerName: b.CustomerName,
		Coords:       bookingCoords(b),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
