package services

import (
	"context"
	"strings"
	"testing"

	"rental-dispatch-service/internal/adapters/geocode"
	"rental-dispatch-service/internal/domain"
)

const (
	addrNew      = "100 New Party St"
	addrDowntown = "200 Downtown Ave"
	addrFarOut   = "300 Far Out Rd"
)

func testGeocoder() *geocode.StaticGeocoder {
	return geocode.NewStaticGeocoder(map[string]domain.Coordinates{
		addrNew:      {Lat: 33.45, Lon: -112.07},
		addrDowntown: {Lat: 33.46, Lon: -112.08}, // ~1.4 km from addrNew
		addrFarOut:   {Lat: 34.20, Lon: -111.30}, // ~110 km away
	})
}

func deliveryFor(driverID, bookingID, address string, day int) domain.Booking {
	return domain.Booking{
		ID:               bookingID,
		DeliveryDate:     date(2026, 9, day),
		PickupDate:       date(2026, 9, day+2),
		DeliveryAddress:  address,
		Status:           domain.StatusConfirmed,
		DeliveryDriverID: strPtr(driverID),
	}
}

func TestRecommendDriversFreshRoute(t *testing.T) {
	drivers := []domain.Driver{{ID: "drv-001", Name: "Marcus Reed", IsActive: true}}
	newBooking := domain.Booking{ID: "new", DeliveryDate: date(2026, 9, 5), DeliveryAddress: addrNew}

	recs := RecommendDrivers(context.Background(), testGeocoder(), DefaultRecommenderConfig(),
		drivers, nil, newBooking, 5)

	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	r := recs[0]
	if r.Score != 0 || r.RouteDisruption != 0 || r.DistanceToDelivery != 0 || r.CurrentStops != 0 {
		t.Fatalf("fresh driver metrics = %+v, want all zero", r)
	}
	if r.Reason != "No existing deliveries - fresh route" {
		t.Fatalf("reason = %q", r.Reason)
	}
}

func TestRecommendDriversRanking(t *testing.T) {
	drivers := []domain.Driver{
		{ID: "drv-far", Name: "Far Driver", IsActive: true},
		{ID: "drv-near", Name: "Near Driver", IsActive: true},
	}
	bookings := []domain.Booking{
		deliveryFor("drv-far", "b-far", addrFarOut, 5),
		deliveryFor("drv-near", "b-near", addrDowntown, 5),
	}
	newBooking := domain.Booking{ID: "new", DeliveryDate: date(2026, 9, 5), DeliveryAddress: addrNew}

	recs := RecommendDrivers(context.Background(), testGeocoder(), DefaultRecommenderConfig(),
		drivers, bookings, newBooking, 5)

	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].DriverID != "drv-near" {
		t.Fatalf("best driver = %s, want drv-near", recs[0].DriverID)
	}
	if recs[0].Score >= recs[1].Score {
		t.Fatalf("scores not ascending: %v >= %v", recs[0].Score, recs[1].Score)
	}
	if !strings.Contains(recs[0].Reason, "mi") {
		t.Fatalf("reason should mention miles: %q", recs[0].Reason)
	}
}

func TestRecommendDriversDisruptionMonotonicUnderAddedStops(t *testing.T) {
	// Both of the driver's stops sit on the far side of the route from the
	// new booking, so every extra stop can only push the best insertion
	// point further away, never closer.
	geocoder := geocode.NewStaticGeocoder(map[string]domain.Coordinates{
		"stop a":   {Lat: 0, Lon: 0},
		"stop b":   {Lat: -0.01, Lon: 0},
		"far away": {Lat: 1.0, Lon: 0},
	})

	drivers := []domain.Driver{{ID: "drv-001", Name: "Marcus Reed", IsActive: true}}
	newBooking := domain.Booking{ID: "new", DeliveryDate: date(2026, 9, 5), DeliveryAddress: "far away"}

	score := func(bookings []domain.Booking) domain.DriverRecommendation {
		t.Helper()
		recs := RecommendDrivers(context.Background(), geocoder, DefaultRecommenderConfig(),
			drivers, bookings, newBooking, 5)
		if len(recs) != 1 {
			t.Fatalf("expected 1 recommendation, got %d", len(recs))
		}
		return recs[0]
	}

	oneStop := []domain.Booking{deliveryFor("drv-001", "b1", "stop a", 5)}
	before := score(oneStop)

	twoStops := append(oneStop, deliveryFor("drv-001", "b2", "stop b", 5))
	after := score(twoStops)

	if after.RouteDisruption < before.RouteDisruption {
		t.Fatalf("disruption decreased after adding a stop: %v -> %v",
			before.RouteDisruption, after.RouteDisruption)
	}
	if after.Score < before.Score {
		t.Fatalf("score decreased after adding a stop: %v -> %v", before.Score, after.Score)
	}
	if after.CurrentStops != before.CurrentStops+1 {
		t.Fatalf("current stops = %d, want %d", after.CurrentStops, before.CurrentStops+1)
	}
}

func TestRecommendDriversCapacityCutoff(t *testing.T) {
	drivers := []domain.Driver{
		{ID: "drv-full", Name: "Full Driver", IsActive: true},
		{ID: "drv-busy", Name: "Busy Driver", IsActive: true},
	}

	bookings := make([]domain.Booking, 0, 15)
	for i := 0; i < 8; i++ {
		bookings = append(bookings, deliveryFor("drv-full", "bf", addrDowntown, 5))
	}
	for i := 0; i < 7; i++ {
		bookings = append(bookings, deliveryFor("drv-busy", "bb", addrDowntown, 5))
	}

	newBooking := domain.Booking{ID: "new", DeliveryDate: date(2026, 9, 5), DeliveryAddress: addrNew}
	recs := RecommendDrivers(context.Background(), testGeocoder(), DefaultRecommenderConfig(),
		drivers, bookings, newBooking, 5)

	if len(recs) != 1 {
		t.Fatalf("expected only the 7-stop driver, got %d recommendations", len(recs))
	}
	if recs[0].DriverID != "drv-busy" {
		t.Fatalf("recommended %s, want drv-busy", recs[0].DriverID)
	}
	if recs[0].CurrentStops != 7 {
		t.Fatalf("current stops = %d, want 7", recs[0].CurrentStops)
	}
}

func TestRecommendDriversSkipsInactive(t *testing.T) {
	drivers := []domain.Driver{{ID: "drv-off", Name: "Off Duty", IsActive: false}}
	newBooking := domain.Booking{ID: "new", DeliveryDate: date(2026, 9, 5), DeliveryAddress: addrNew}

	recs := RecommendDrivers(context.Background(), testGeocoder(), DefaultRecommenderConfig(),
		drivers, nil, newBooking, 5)
	if len(recs) != 0 {
		t.Fatalf("inactive driver recommended: %+v", recs)
	}
}

func TestRecommendDriversUnresolvableNewAddress(t *testing.T) {
	drivers := []domain.Driver{{ID: "drv-001", Name: "Marcus Reed", IsActive: true}}
	newBooking := domain.Booking{ID: "new", DeliveryDate: date(2026, 9, 5), DeliveryAddress: "no such place"}

	recs := RecommendDrivers(context.Background(), testGeocoder(), DefaultRecommenderConfig(),
		drivers, nil, newBooking, 5)
	if len(recs) != 0 {
		t.Fatalf("expected empty result for unresolvable address, got %d", len(recs))
	}
}

func TestRecommendDriversSkipsUnscorableRoute(t *testing.T) {
	// The driver's single existing stop cannot be geocoded, so neither
	// disruption nor proximity can be evaluated.
	drivers := []domain.Driver{{ID: "drv-001", Name: "Marcus Reed", IsActive: true}}
	bookings := []domain.Booking{deliveryFor("drv-001", "b1", "unmappable address", 5)}
	newBooking := domain.Booking{ID: "new", DeliveryDate: date(2026, 9, 5), DeliveryAddress: addrNew}

	recs := RecommendDrivers(context.Background(), testGeocoder(), DefaultRecommenderConfig(),
		drivers, bookings, newBooking, 5)
	if len(recs) != 0 {
		t.Fatalf("unscorable driver recommended: %+v", recs)
	}
}

func TestRecommendDriversTruncatesToMax(t *testing.T) {
	drivers := make([]domain.Driver, 0, 8)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		drivers = append(drivers, domain.Driver{ID: id, Name: "Driver " + id, IsActive: true})
	}
	newBooking := domain.Booking{ID: "new", DeliveryDate: date(2026, 9, 5), DeliveryAddress: addrNew}

	recs := RecommendDrivers(context.Background(), testGeocoder(), DefaultRecommenderConfig(),
		drivers, nil, newBooking, 5)
	if len(recs) != 5 {
		t.Fatalf("expected 5 recommendations, got %d", len(recs))
	}
}

func TestBuildDriverRouteCollectsDeliveriesAndPickups(t *testing.T) {
	driver := domain.Driver{ID: "drv-001", Name: "Marcus Reed", IsActive: true}
	day := date(2026, 9, 5)

	bookings := []domain.Booking{
		{
			ID: "b-del", DeliveryDate: day, PickupDate: date(2026, 9, 7),
			DeliveryAddress: addrDowntown, Status: domain.StatusConfirmed,
			DeliveryDriverID: strPtr("drv-001"),
		},
		{
			ID: "b-pick", DeliveryDate: date(2026, 9, 3), PickupDate: day,
			DeliveryAddress: addrFarOut, Status: domain.StatusActive,
			PickupDriverID: strPtr("drv-001"),
		},
		{
			ID: "b-cancelled", DeliveryDate: day, PickupDate: day,
			DeliveryAddress: addrDowntown, Status: domain.StatusCancelled,
			DeliveryDriverID: strPtr("drv-001"),
		},
	}

	route := BuildDriverRoute(context.Background(), testGeocoder(), driver, bookings, day)

	if len(route.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(route.Stops))
	}
	if route.Stops[0].Type != domain.StopDelivery || route.Stops[1].Type != domain.StopPickup {
		t.Fatalf("stop types = %s, %s", route.Stops[0].Type, route.Stops[1].Type)
	}
	if route.TotalDistanceMiles <= 0 {
		t.Fatalf("total distance = %v, want > 0", route.TotalDistanceMiles)
	}
}
