package services

import (
	"math"

	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/geo"
)

// NearestNeighborOrder orders stops with a greedy nearest-neighbor heuristic
// starting from the depot coordinates: repeatedly visit the geographically
// nearest unvisited stop and advance to it. Ties go to the
// first-encountered stop, so identical input always yields identical output.
//
// Stops without coordinates cannot be compared; the moment no
// coordinate-bearing candidate remains, ALL remaining stops are appended in
// their original relative order. This is a greedy approximation, not optimal
// TSP.
func NearestNeighborOrder(stops []domain.RouteStop, startLat, startLon float64) []domain.RouteStop {
	if len(stops) == 0 {
		return []domain.RouteStop{}
	}

	ordered := make([]domain.RouteStop, 0, len(stops))
	remaining := make([]domain.RouteStop, len(stops))
	copy(remaining, stops)

	currentLat, currentLon := startLat, startLon

	for len(remaining) > 0 {
		nearestIdx := -1
		minDistance := math.Inf(1)

		for i, s := range remaining {
			if s.Coords == nil {
				continue
			}
			d := geo.HaversineKm(currentLat, currentLon, s.Coords.Lat, s.Coords.Lon)
			if d < minDistance {
				minDistance = d
				nearestIdx = i
			}
		}

		if nearestIdx < 0 {
			// No geocoded candidate left; dump the rest in input order.
			ordered = append(ordered, remaining...)
			break
		}

		nearest := remaining[nearestIdx]
		ordered = append(ordered, nearest)
		remaining = append(remaining[:nearestIdx], remaining[nearestIdx+1:]...)
		currentLat, currentLon = nearest.Coords.Lat, nearest.Coords.Lon
	}

	return ordered
}

// RouteDistanceKm totals the depot -> stops -> depot legs of an ordered stop
// sequence. Legs touching a stop without coordinates contribute nothing.
func RouteDistanceKm(stops []domain.RouteStop, depotLat, depotLon float64) float64 {
	if len(stops) == 0 {
		return 0.0
	}

	total := 0.0

	if first := stops[0].Coords; first != nil {
		total += geo.HaversineKm(depotLat, depotLon, first.Lat, first.Lon)
	}

	for i := 0; i+1 < len(stops); i++ {
		a, b := stops[i].Coords, stops[i+1].Coords
		if a == nil || b == nil {
			continue
		}
		total += geo.HaversineKm(a.Lat, a.Lon, b.Lat, b.Lon)
	}

	if last := stops[len(stops)-1].Coords; last != nil {
		total += geo.HaversineKm(last.Lat, last.Lon, depotLat, depotLon)
	}

	return total
}

// EstimateRouteHours converts distance and stop count into a rough duration:
// 40 km/h average travel plus 20 minutes of handling per stop.
func EstimateRouteHours(distanceKm float64, stopCount int) float64 {
	return distanceKm/40.0 + float64(stopCount)*(20.0/60.0)
}
