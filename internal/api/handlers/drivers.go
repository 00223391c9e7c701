package handlers

import (
	"errors"
	"log"
	"net/http"

	"rental-dispatch-service/internal/api/dto"
	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/ports"
	"rental-dispatch-service/internal/services"
)

// DriverHandler exposes driver listing and the per-day route sheet used by
// the dispatch screen.
type DriverHandler struct {
	Drivers    ports.DriverRepository
	Bookings   ports.BookingRepository
	Warehouses ports.WarehouseRepository
}

func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	drivers, err := h.Drivers.ListDrivers(r.Context())
	if err != nil {
		log.Printf("list drivers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDriversResponse{Drivers: make([]dto.DriverResponse, 0, len(drivers))}
	for _, d := range drivers {
		res.Drivers = append(res.Drivers, dto.DriverResponse{
			DriverID:        d.ID,
			Name:            d.Name,
			Email:           d.Email,
			Phone:           d.Phone,
			IsActive:        d.IsActive,
			TotalDeliveries: d.TotalDeliveries,
			TotalEarnings:   d.TotalEarnings,
			Rating:          d.Rating,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// RouteSheet returns a driver's organized itinerary for one date: warehouse
// pickups, customer deliveries, customer pickups, warehouse returns. Empty
// groups are a valid "no stops today", not an error.
func (h *DriverHandler) RouteSheet(w http.ResponseWriter, r *http.Request) {
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

	driver, err := h.Drivers.GetDriver(r.Context(), r.PathValue("driver_id"))
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "driver not found")
		return
	}
	if err != nil {
		log.Printf("get driver failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	bookings, err := h.Bookings.ListBookings(r.Context())
	if err != nil {
		log.Printf("list bookings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	warehouses, err := h.Warehouses.ListWarehouses(r.Context())
	if err != nil {
		log.Printf("list warehouses failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	byID := make(map[string]domain.Warehouse, len(warehouses))
	for _, wh := range warehouses {
		byID[wh.ID] = wh
	}

	sheet := services.BuildRouteSheet(driver, date, bookings, byID)

	res := dto.RouteSheetResponse{
		DriverID:         sheet.DriverID,
		DriverName:       sheet.DriverName,
		RouteDate:        formatDate(sheet.Date),
		TotalStops:       sheet.TotalStops,
		TotalEarnings:    sheet.TotalEarnings,
		WarehousePickups: stopResponses(sheet.WarehousePickups),
		Deliveries:       stopResponses(sheet.Deliveries),
		Pickups:          stopResponses(sheet.Pickups),
		WarehouseReturns: stopResponses(sheet.WarehouseReturns),
	}

	writeJSON(w, r, http.StatusOK, res)
}

func stopResponses(stops []domain.Stop) []dto.StopResponse {
	out := make([]dto.StopResponse, 0, len(stops))
	for _, s := range stops {
		res := dto.StopResponse{
			StopNumber:    s.StopNumber,
			Type:          string(s.Type),
			BookingID:     s.BookingID,
			OrderNumber:   s.OrderNumber,
			WarehouseID:   s.WarehouseID,
			WarehouseName: s.WarehouseName,
			CustomerName:  s.CustomerName,
			CustomerPhone: s.CustomerPhone,
			Address:       s.Address,
			TimeWindow:    s.TimeWindow,
			Instructions:  s.Instructions,
			Items:         s.ItemNames,
			DeliveryFee:   s.DeliveryFee,
			Tip:           s.Tip,
			Status:        s.Status,
		}

		if s.Coords != nil {
			lat, lng := s.Coords.Lat, s.Coords.Lon
			res.Lat, res.Lng = &lat, &lng
		}

		for _, li := range s.LoadItems {
			res.LoadItems = append(res.LoadItems, dto.LoadItemResponse{
				Name:        li.Name,
				OrderNumber: li.OrderNumber,
			})
		}

		for _, pi := range s.PickupItems {
			item := dto.PickupItemResponse{
				Name:            pi.Name,
				ReturnWarehouse: pi.ReturnWarehouse,
				HasNextBooking:  pi.HasNextBooking,
			}
			if pi.NextBookingDate != nil {
				d := formatDate(*pi.NextBookingDate)
				item.NextBookingDate = &d
			}
			res.PickupItems = append(res.PickupItems, item)
		}

		out = append(out, res)
	}
	return out
}
