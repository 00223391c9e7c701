package geo

import "math"

const (
	// Earth radius used by the great-circle formula.
	earthRadiusKm = 6371.0

	milesPerKm = 0.621371
)

// HaversineKm returns the great-circle distance between two points in
// kilometers. Pure and total: symmetric in its arguments and zero for
// identical points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := radians(lat1)
	rlat2 := radians(lat2)
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// HaversineMiles returns the great-circle distance in miles.
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineKm(lat1, lon1, lat2, lon2) * milesPerKm
}

// KmToMiles converts kilometers to miles.
func KmToMiles(km float64) float64 { return km * milesPerKm }

func radians(deg float64) float64 { return deg * math.Pi / 180 }
