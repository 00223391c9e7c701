package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/geo"
	"rental-dispatch-service/internal/ports"
)

// RecommenderConfig holds the scoring knobs for driver recommendations.
// The defaults reproduce the tuning the dispatch team runs with: detours
// weigh more than raw proximity, and busy drivers are mildly penalized.
type RecommenderConfig struct {
	// A driver with this many stops already scheduled on the delivery date
	// is at capacity and disqualified outright.
	MaxStopsPerDay int

	DisruptionWeight    float64
	ProximityWeight     float64
	WorkloadPenalty     float64 // per existing stop
	MinimalDisruptionMi float64 // threshold for the "minimal disruption" reason
	CloseProximityMi    float64 // threshold for the "close to existing route" reason
}

func DefaultRecommenderConfig() RecommenderConfig {
	return RecommenderConfig{
		MaxStopsPerDay:      8,
		DisruptionWeight:    0.6,
		ProximityWeight:     0.4,
		WorkloadPenalty:     0.5,
		MinimalDisruptionMi: 2.0,
		CloseProximityMi:    5.0,
	}
}

// BuildDriverRoute collects a driver's stops for one date: delivery stops for
// bookings the driver delivers that day, and pickup stops for bookings the
// driver collects that day (pickups happen at the delivery address). Each
// stop's address is geocoded; stops whose address cannot be resolved keep nil
// coordinates and are excluded from distance math.
func BuildDriverRoute(
	ctx context.Context,
	geocoder ports.Geocoder,
	driver domain.Driver,
	bookings []domain.Booking,
	date time.Time,
) domain.DriverRoute {
	route := domain.DriverRoute{
		DriverID:   driver.ID,
		DriverName: driver.Name,
		Date:       date,
	}

	for _, b := range bookings {
		if b.Status.Terminal() {
			continue
		}

		if b.DeliveryDriverID != nil && *b.DeliveryDriverID == driver.ID && domain.SameDay(b.DeliveryDate, date) {
			route.Stops = append(route.Stops, routeStop(ctx, geocoder, b, domain.StopDelivery, b.DeliveryWindow))
		}

		if b.PickupDriverID != nil && *b.PickupDriverID == driver.ID && domain.SameDay(b.PickupDate, date) {
			route.Stops = append(route.Stops, routeStop(ctx, geocoder, b, domain.StopPickup, b.PickupWindow))
		}
	}

	route.TotalDistanceMiles = routeDistanceMiles(route.Stops)
	return route
}

func routeStop(
	ctx context.Context,
	geocoder ports.Geocoder,
	b domain.Booking,
	stopType domain.StopType,
	window string,
) domain.RouteStop {
	stop := domain.RouteStop{
		BookingID:    b.ID,
		OrderNumber:  b.OrderNumber,
		Address:      b.DeliveryAddress,
		Type:         stopType,
		TimeWindow:   window,
		CustomerName: b.CustomerName,
	}

	coords, err := geocoder.Geocode(ctx, b.DeliveryAddress)
	if err == nil {
		stop.Coords = &coords
	}

	return stop
}

func routeDistanceMiles(stops []domain.RouteStop) float64 {
	total := 0.0
	for i := 0; i+1 < len(stops); i++ {
		a, b := stops[i].Coords, stops[i+1].Coords
		if a == nil || b == nil {
			continue
		}
		total += geo.HaversineMiles(a.Lat, a.Lon, b.Lat, b.Lon)
	}
	return total
}

// routeDisruption returns the minimal extra miles the route incurs by
// inserting a stop at the new coordinates at its best position: for an empty
// route zero, for a single stop the distance to it, otherwise the best of
// every adjacent gap and the route end, clamped to >= 0. Returns +Inf when no
// insertion point can be evaluated (stops without coordinates).
func routeDisruption(route domain.DriverRoute, newCoords domain.Coordinates) float64 {
	stops := route.Stops

	if len(stops) == 0 {
		return 0.0
	}

	if len(stops) == 1 {
		if stops[0].Coords == nil {
			return math.Inf(1)
		}
		c := stops[0].Coords
		return geo.HaversineMiles(c.Lat, c.Lon, newCoords.Lat, newCoords.Lon)
	}

	minAdded := math.Inf(1)

	for i := 0; i < len(stops); i++ {
		if i == len(stops)-1 {
			// Append after the final stop.
			c := stops[i].Coords
			if c == nil {
				continue
			}
			added := geo.HaversineMiles(c.Lat, c.Lon, newCoords.Lat, newCoords.Lon)
			minAdded = math.Min(minAdded, added)
			continue
		}

		a, b := stops[i].Coords, stops[i+1].Coords
		if a == nil || b == nil {
			continue
		}

		original := geo.HaversineMiles(a.Lat, a.Lon, b.Lat, b.Lon)
		withNew := geo.HaversineMiles(a.Lat, a.Lon, newCoords.Lat, newCoords.Lon) +
			geo.HaversineMiles(newCoords.Lat, newCoords.Lon, b.Lat, b.Lon)
		minAdded = math.Min(minAdded, withNew-original)
	}

	return math.Max(0.0, minAdded)
}

// distanceToNearestStop returns the miles from the new coordinates to the
// closest stop on the route. An empty route is 0: a driver with nothing
// scheduled is maximally available for any location.
func distanceToNearestStop(route domain.DriverRoute, newCoords domain.Coordinates) float64 {
	if len(route.Stops) == 0 {
		return 0.0
	}

	min := math.Inf(1)
	for _, s := range route.Stops {
		if s.Coords == nil {
			continue
		}
		d := geo.HaversineMiles(s.Coords.Lat, s.Coords.Lon, newCoords.Lat, newCoords.Lon)
		min = math.Min(min, d)
	}

	return min
}

// RecommendDrivers evaluates every active driver's route on the new booking's
// delivery date and ranks the cost of taking the new stop. Lower score is
// better. Drivers at capacity are disqualified; drivers whose route cannot be
// scored (unresolvable addresses) are silently skipped. An empty result means
// no driver is feasible, which callers must treat as a valid outcome.
func RecommendDrivers(
	ctx context.Context,
	geocoder ports.Geocoder,
	cfg RecommenderConfig,
	drivers []domain.Driver,
	bookings []domain.Booking,
	newBooking domain.Booking,
	maxRecommendations int,
) []domain.DriverRecommendation {
	if newBooking.DeliveryDate.IsZero() || newBooking.DeliveryAddress == "" {
		log.Printf("recommend drivers: booking %s missing delivery date or address", newBooking.ID)
		return []domain.DriverRecommendation{}
	}

	newCoords, err := geocoder.Geocode(ctx, newBooking.DeliveryAddress)
	if err != nil {
		log.Printf("recommend drivers: could not geocode %q", newBooking.DeliveryAddress)
		return []domain.DriverRecommendation{}
	}

	recommendations := make([]domain.DriverRecommendation, 0, len(drivers))

	for _, driver := range drivers {
		if !driver.IsActive {
			continue
		}

		route := BuildDriverRoute(ctx, geocoder, driver, bookings, newBooking.DeliveryDate)

		// Capacity is a hard conflict, not a scoring penalty.
		if len(route.Stops) >= cfg.MaxStopsPerDay {
			continue
		}

		disruption := routeDisruption(route, newCoords)
		distance := distanceToNearestStop(route, newCoords)

		if math.IsInf(disruption, 1) || math.IsInf(distance, 1) {
			continue
		}

		score := disruption*cfg.DisruptionWeight +
			distance*cfg.ProximityWeight +
			float64(len(route.Stops))*cfg.WorkloadPenalty

		var reason string
		switch {
		case len(route.Stops) == 0:
			reason = "No existing deliveries - fresh route"
		case disruption < cfg.MinimalDisruptionMi:
			reason = fmt.Sprintf("Minimal disruption (%.1fmi added)", disruption)
		case distance < cfg.CloseProximityMi:
			reason = fmt.Sprintf("Close to existing route (%.1fmi away)", distance)
		default:
			reason = fmt.Sprintf("%d stops, %.1fmi added", len(route.Stops), disruption)
		}

		recommendations = append(recommendations, domain.DriverRecommendation{
			DriverID:           driver.ID,
			DriverName:         driver.Name,
			Score:              score,
			DistanceToDelivery: distance,
			RouteDisruption:    disruption,
			CurrentStops:       len(route.Stops),
			Reason:             reason,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score < recommendations[j].Score
	})

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return recommendations
}
