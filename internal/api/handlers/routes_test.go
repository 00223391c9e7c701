package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouteHandlerDistance(t *testing.T) {
	h := &RouteHandler{}

	req := httptest.NewRequest(http.MethodGet,
		"/routes/distance?from_lat=33.4461&from_lon=-112.0978&to_lat=33.5094&to_lon=-112.0332", nil)
	rec := httptest.NewRecorder()

	h.Distance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res struct {
		DistanceKm    float64 `json:"distance_km"`
		DistanceMiles float64 `json:"distance_miles"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Downtown Phoenix to Camelback corridor, roughly 9 km.
	if res.DistanceKm < 8 || res.DistanceKm > 11 {
		t.Fatalf("distance_km = %v, want ~9", res.DistanceKm)
	}
	if res.DistanceMiles >= res.DistanceKm {
		t.Fatalf("miles %v should be less than km %v", res.DistanceMiles, res.DistanceKm)
	}
}

func TestRouteHandlerDistanceRejectsBadInput(t *testing.T) {
	h := &RouteHandler{}

	req := httptest.NewRequest(http.MethodGet, "/routes/distance?from_lat=abc", nil)
	rec := httptest.NewRecorder()

	h.Distance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRouteHandlerDistanceMethodNotAllowed(t *testing.T) {
	h := &RouteHandler{}

	req := httptest.NewRequest(http.MethodPost, "/routes/distance", nil)
	rec := httptest.NewRecorder()

	h.Distance(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodGet {
		t.Fatalf("Allow = %q, want GET", allow)
	}
}
