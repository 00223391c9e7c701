package handlers

import (
	"log"
	"net/http"

	"rental-dispatch-service/internal/api/dto"
	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/ports"
	"rental-dispatch-service/internal/services"
)

// ConflictHandler surfaces double-booked items for the admin dashboard.
type ConflictHandler struct {
	Bookings ports.BookingRepository
}

func (h *ConflictHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	bookings, err := h.Bookings.ListBookings(r.Context())
	if err != nil {
		log.Printf("list bookings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	conflicts := services.DetectAllConflicts(bookings)

	res := dto.ListConflictsResponse{Conflicts: make([]dto.ConflictResponse, 0, len(conflicts))}
	for _, c := range conflicts {
		res.Conflicts = append(res.Conflicts, dto.ConflictResponse{
			ItemID:   c.ItemID,
			ItemName: c.ItemName,
			Booking1: conflictBookingResponse(c.Booking1),
			Booking2: conflictBookingResponse(c.Booking2),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func conflictBookingResponse(b domain.ConflictBooking) dto.ConflictBookingResponse {
	return dto.ConflictBookingResponse{
		BookingID:    b.BookingID,
		OrderNumber:  b.OrderNumber,
		CustomerName: b.CustomerName,
		DeliveryDate: formatDate(b.DeliveryDate),
		PickupDate:   formatDate(b.PickupDate),
	}
}
