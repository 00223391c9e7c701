package handlers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"rental-dispatch-service/internal/api/dto"
	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/geo"
	"rental-dispatch-service/internal/ports"
	"rental-dispatch-service/internal/services"
)

// RouteHandler exposes fleet-wide route optimization and the raw
// coordinate-distance helper.
type RouteHandler struct {
	Bookings   ports.BookingRepository
	Drivers    ports.DriverRepository
	Warehouses ports.WarehouseRepository
}

// Optimize returns a nearest-neighbor ordered route per driver group for one
// date, starting and ending at the depot warehouse.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date, err := parseDate(r.PathValue("route_date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "route date must be YYYY-MM-DD")
		return
	}

	depot, err := h.Warehouses.FirstActiveWarehouse(r.Context())
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusInternalServerError, "no active warehouse found")
		return
	}
	if err != nil {
		log.Printf("load depot failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	bookings, err := h.Bookings.ListBookings(r.Context())
	if err != nil {
		log.Printf("list bookings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	drivers, err := h.Drivers.ListDrivers(r.Context())
	if err != nil {
		log.Printf("list drivers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	routes := services.OptimizeFleet(date, bookings, drivers, depot)

	res := make([]dto.OptimizedRouteResponse, 0, len(routes))
	for _, route := range routes {
		res = append(res, optimizedRouteResponse(route))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Distance computes the great-circle distance between two coordinate pairs.
func (h *RouteHandler) Distance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	coords := make([]float64, 0, 4)
	for _, key := range []string{"from_lat", "from_lon", "to_lat", "to_lon"} {
		v, err := strconv.ParseFloat(q.Get(key), 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, key+" must be a number")
			return
		}
		coords = append(coords, v)
	}

	km := geo.HaversineKm(coords[0], coords[1], coords[2], coords[3])

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		DistanceKm:    round2(km),
		DistanceMiles: round2(geo.KmToMiles(km)),
	})
}

func optimizedRouteResponse(route domain.OptimizedRoute) dto.OptimizedRouteResponse {
	stops := make([]dto.OptimizedStopResponse, 0, len(route.Stops))
	for _, s := range route.Stops {
		stop := dto.OptimizedStopResponse{
			BookingID:    s.BookingID,
			OrderNumber:  s.OrderNumber,
			Address:      s.Address,
			TimeWindow:   s.TimeWindow,
			CustomerName: s.CustomerName,
			DeliveryType: string(s.Type),
		}
		if s.Coords != nil {
			lat, lng := s.Coords.Lat, s.Coords.Lon
			stop.Lat, stop.Lng = &lat, &lng
		}
		stops = append(stops, stop)
	}

	return dto.OptimizedRouteResponse{
		DriverID:        route.DriverID,
		DriverName:      route.DriverName,
		TotalStops:      route.TotalStops,
		TotalDistanceKm: route.TotalDistanceKm,
		EstimatedHours:  route.EstimatedHours,
		Stops:           stops,
		WarehouseStart:  route.WarehouseStart,
		WarehouseEnd:    route.WarehouseEnd,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
