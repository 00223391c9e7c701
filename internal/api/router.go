package api

import (
	"net/http"

	"rental-dispatch-service/internal/api/handlers"
	"rental-dispatch-service/internal/ports"
	"rental-dispatch-service/internal/services"
)

// Deps collects the ports the API needs. The router is the composition root;
// handlers stay unaware of concrete adapters.
type Deps struct {
	Bookings   ports.BookingRepository
	Drivers    ports.DriverRepository
	Warehouses ports.WarehouseRepository
	Items      ports.InventoryRepository
	Geocoder   ports.Geocoder

	Recommender services.RecommenderConfig
	MaxRecs     int
}

func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	bookingHandler := &handlers.BookingHandler{Bookings: deps.Bookings}
	availabilityHandler := &handlers.AvailabilityHandler{
		Bookings: deps.Bookings,
		Items:    deps.Items,
	}
	driverHandler := &handlers.DriverHandler{
		Drivers:    deps.Drivers,
		Bookings:   deps.Bookings,
		Warehouses: deps.Warehouses,
	}
	recHandler := &handlers.RecommendationHandler{
		Bookings: deps.Bookings,
		Drivers:  deps.Drivers,
		Geocoder: deps.Geocoder,
		Config:   deps.Recommender,
		MaxRecs:  deps.MaxRecs,
	}
	routeHandler := &handlers.RouteHandler{
		Bookings:   deps.Bookings,
		Drivers:    deps.Drivers,
		Warehouses: deps.Warehouses,
	}
	conflictHandler := &handlers.ConflictHandler{Bookings: deps.Bookings}
	inventoryHandler := &handlers.InventoryHandler{Items: deps.Items}
	warehouseHandler := &handlers.WarehouseHandler{Warehouses: deps.Warehouses}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/bookings", bookingHandler.Collection)
	mux.HandleFunc("/bookings/{booking_id}", bookingHandler.Get)
	mux.HandleFunc("/bookings/{booking_id}/recommendations", recHandler.Recommend)
	mux.HandleFunc("/bookings/availability", availabilityHandler.Check)
	mux.HandleFunc("/drivers", driverHandler.List)
	mux.HandleFunc("/drivers/{driver_id}/route/{route_date}", driverHandler.RouteSheet)
	mux.HandleFunc("/routes/optimize/{route_date}", routeHandler.Optimize)
	mux.HandleFunc("/routes/distance", routeHandler.Distance)
	mux.HandleFunc("/conflicts", conflictHandler.List)
	mux.HandleFunc("/inventory", inventoryHandler.List)
	mux.HandleFunc("/inventory/suitable", inventoryHandler.Suitable)
	mux.HandleFunc("/warehouses", warehouseHandler.List)

	return requestIDMiddleware(loggingMiddleware(mux))
}
