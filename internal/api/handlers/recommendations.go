package handlers

import (
	"errors"
	"log"
	"net/http"

	"rental-dispatch-service/internal/api/dto"
	"rental-dispatch-service/internal/ports"
	"rental-dispatch-service/internal/services"
)

// RecommendationHandler ranks drivers for a booking that still needs a
// delivery driver.
type RecommendationHandler struct {
	Bookings ports.BookingRepository
	Drivers  ports.DriverRepository
	Geocoder ports.Geocoder
	Config   services.RecommenderConfig
	MaxRecs  int
}

// Recommend returns the ranked driver list for one booking. An empty list
// means no driver is feasible, which renders as an empty state.
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	booking, err := h.Bookings.GetBooking(r.Context(), r.PathValue("booking_id"))
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "booking not found")
		return
	}
	if err != nil {
		log.Printf("get booking failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	drivers, err := h.Drivers.ListDrivers(r.Context())
	if err != nil {
		log.Printf("list drivers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	bookings, err := h.Bookings.ListBookings(r.Context())
	if err != nil {
		log.Printf("list bookings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	recs := services.RecommendDrivers(r.Context(), h.Geocoder, h.Config, drivers, bookings, booking, h.MaxRecs)

	res := dto.ListRecommendationsResponse{
		BookingID:       booking.ID,
		DeliveryAddress: booking.DeliveryAddress,
		Recommendations: make([]dto.RecommendationResponse, 0, len(recs)),
	}
	for _, rec := range recs {
		res.Recommendations = append(res.Recommendations, dto.RecommendationResponse{
			DriverID:           rec.DriverID,
			DriverName:         rec.DriverName,
			Score:              round2(rec.Score),
			DistanceToDelivery: round2(rec.DistanceToDelivery),
			RouteDisruption:    round2(rec.RouteDisruption),
			CurrentStops:       rec.CurrentStops,
			Reason:             rec.Reason,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
