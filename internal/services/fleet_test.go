package services

import (
	"testing"

	"rental-dispatch-service/internal/domain"
)

func f64Ptr(v float64) *float64 { return &v }

func fleetBooking(id string, driverID *string, lat, lng float64, day int) domain.Booking {
	return domain.Booking{
		ID:               id,
		OrderNumber:      "PTY-" + id,
		DeliveryDate:     date(2026, 9, day),
		PickupDate:       date(2026, 9, day+2),
		DeliveryAddress:  "addr " + id,
		DeliveryLat:      f64Ptr(lat),
		DeliveryLng:      f64Ptr(lng),
		Status:           domain.StatusConfirmed,
		DeliveryDriverID: driverID,
	}
}

func TestOptimizeFleetGroupsAndSorts(t *testing.T) {
	depot := domain.Warehouse{ID: "wh-main", Name: "Main Warehouse", Lat: 33.4461, Lng: -112.0978, IsActive: true}
	drivers := []domain.Driver{
		{ID: "drv-z", Name: "Zoe Park", IsActive: true},
		{ID: "drv-a", Name: "Alicia Gomez", IsActive: true},
	}
	day := 5

	bookings := []domain.Booking{
		fleetBooking("b1", strPtr("drv-z"), 33.50, -112.03, day),
		fleetBooking("b2", strPtr("drv-a"), 33.43, -111.70, day),
		fleetBooking("b3", nil, 33.49, -111.92, day),
	}

	routes := OptimizeFleet(date(2026, 9, day), bookings, drivers, depot)

	if len(routes) != 3 {
		t.Fatalf("expected 3 route groups, got %d", len(routes))
	}

	// Named drivers alphabetically, unassigned pool last.
	if routes[0].DriverName == nil || *routes[0].DriverName != "Alicia Gomez" {
		t.Fatalf("first route driver = %v", routes[0].DriverName)
	}
	if routes[1].DriverName == nil || *routes[1].DriverName != "Zoe Park" {
		t.Fatalf("second route driver = %v", routes[1].DriverName)
	}
	if routes[2].DriverID != nil || routes[2].DriverName != nil {
		t.Fatalf("last route should be the unassigned pool, got %+v", routes[2])
	}

	for _, r := range routes {
		if r.TotalStops != 1 {
			t.Fatalf("route stops = %d, want 1", r.TotalStops)
		}
		if r.WarehouseStart != "Main Warehouse" || r.WarehouseEnd != "Main Warehouse" {
			t.Fatalf("depot names = %q/%q", r.WarehouseStart, r.WarehouseEnd)
		}
		if r.TotalDistanceKm <= 0 {
			t.Fatalf("distance = %v, want > 0", r.TotalDistanceKm)
		}
		if r.EstimatedHours <= 0 {
			t.Fatalf("estimated hours = %v, want > 0", r.EstimatedHours)
		}
	}
}

func TestOptimizeFleetPickupDriverFallback(t *testing.T) {
	depot := domain.Warehouse{Name: "Main Warehouse", Lat: 33.44, Lng: -112.09}
	day := 5

	// Pickup on the route date, no pickup driver: the delivery driver keeps it.
	b := fleetBooking("b1", strPtr("drv-a"), 33.50, -112.03, day-2)
	b.PickupDate = date(2026, 9, day)

	routes := OptimizeFleet(date(2026, 9, day), []domain.Booking{b},
		[]domain.Driver{{ID: "drv-a", Name: "Alicia Gomez"}}, depot)

	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}
	if routes[0].DriverID == nil || *routes[0].DriverID != "drv-a" {
		t.Fatalf("pickup fell to %v, want drv-a", routes[0].DriverID)
	}
	if routes[0].Stops[0].Type != domain.StopPickup {
		t.Fatalf("stop type = %s, want pickup", routes[0].Stops[0].Type)
	}
}

func TestOptimizeFleetUnknownDriverName(t *testing.T) {
	depot := domain.Warehouse{Name: "Main Warehouse"}
	day := 5

	routes := OptimizeFleet(date(2026, 9, day),
		[]domain.Booking{fleetBooking("b1", strPtr("drv-ghost"), 33.5, -112.0, day)},
		nil, depot)

	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}
	if routes[0].DriverName == nil || *routes[0].DriverName != "Unknown Driver" {
		t.Fatalf("driver name = %v, want Unknown Driver", routes[0].DriverName)
	}
}

func TestOptimizeFleetSkipsTerminalAndOtherDates(t *testing.T) {
	depot := domain.Warehouse{Name: "Main Warehouse"}
	day := 5

	cancelled := fleetBooking("b1", strPtr("drv-a"), 33.5, -112.0, day)
	cancelled.Status = domain.StatusCancelled
	otherDay := fleetBooking("b2", strPtr("drv-a"), 33.5, -112.0, day+1)

	routes := OptimizeFleet(date(2026, 9, day), []domain.Booking{cancelled, otherDay}, nil, depot)
	if len(routes) != 0 {
		t.Fatalf("expected no routes, got %d", len(routes))
	}
}
