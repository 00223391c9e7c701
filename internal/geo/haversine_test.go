package geo

import (
	"math"
	"testing"
)

func TestHaversineKmKnownDistance(t *testing.T) {
	// New York to Los Angeles, roughly 3936 km great-circle.
	got := HaversineKm(40.7128, -74.0060, 34.0522, -118.2437)
	if got < 3900 || got > 3975 {
		t.Fatalf("NYC-LA distance = %.1f km, want ~3936", got)
	}
}

func TestHaversineKmIdenticalPoints(t *testing.T) {
	if d := HaversineKm(33.4461, -112.0978, 33.4461, -112.0978); d != 0 {
		t.Fatalf("distance between identical points = %v, want 0", d)
	}
}

func TestHaversineKmSymmetric(t *testing.T) {
	ab := HaversineKm(33.4461, -112.0978, 33.5094, -112.0332)
	ba := HaversineKm(33.5094, -112.0332, 33.4461, -112.0978)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("asymmetric distance: ab=%v ba=%v", ab, ba)
	}
}

func TestHaversineMilesMatchesConversion(t *testing.T) {
	km := HaversineKm(40.7128, -74.0060, 34.0522, -118.2437)
	mi := HaversineMiles(40.7128, -74.0060, 34.0522, -118.2437)
	if math.Abs(mi-KmToMiles(km)) > 1e-9 {
		t.Fatalf("miles = %v, want %v", mi, KmToMiles(km))
	}
}
