package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"rental-dispatch-service/internal/api/dto"
	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/ports"
	"rental-dispatch-service/internal/services"
)

// BookingHandler exposes booking retrieval, creation and availability checks.
type BookingHandler struct {
	Bookings ports.BookingRepository
}

func (h *BookingHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Bookings.ListBookings(r.Context())
	if err != nil {
		log.Printf("list bookings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListBookingsResponse{Bookings: make([]dto.BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		res.Bookings = append(res.Bookings, bookingResponse(b))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	b, err := h.Bookings.GetBooking(r.Context(), r.PathValue("booking_id"))
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "booking not found")
		return
	}
	if err != nil {
		log.Printf("get booking failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, bookingResponse(b))
}

func (h *BookingHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	deliveryDate, err := parseDate(req.DeliveryDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "delivery_date must be YYYY-MM-DD")
		return
	}
	pickupDate, err := parseDate(req.PickupDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "pickup_date must be YYYY-MM-DD")
		return
	}
	if pickupDate.Before(deliveryDate) {
		writeError(w, r, http.StatusBadRequest, "pickup_date must not be before delivery_date")
		return
	}
	if req.DeliveryAddress == "" {
		writeError(w, r, http.StatusBadRequest, "delivery_address is required")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, r, http.StatusBadRequest, "at least one item is required")
		return
	}

	items := make([]domain.BookingItem, 0, len(req.Items))
	for _, it := range req.Items {
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		items = append(items, domain.BookingItem{
			InventoryItemID:   it.InventoryItemID,
			Quantity:          qty,
			Price:             it.Price,
			PickupWarehouseID: it.PickupWarehouseID,
			ReturnWarehouseID: it.ReturnWarehouseID,
		})
	}

	totals := services.CalculateBookingTotals(items, req.DeliveryFee, req.Tip)

	b := domain.Booking{
		ID:                uuid.NewString(),
		OrderNumber:       services.GenerateOrderNumber(time.Now()),
		CustomerID:        req.CustomerID,
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		DeliveryDate:      deliveryDate,
		DeliveryWindow:    req.DeliveryWindow,
		PickupDate:        pickupDate,
		PickupWindow:      req.PickupWindow,
		DeliveryAddress:   req.DeliveryAddress,
		RentalDays:        services.CalculateRentalDays(deliveryDate, pickupDate),
		Status:            domain.StatusPending,
		Subtotal:          totals.Subtotal,
		DeliveryFee:       totals.DeliveryFee,
		Tip:               totals.Tip,
		Total:             totals.Total,
		SetupInstructions: req.Instructions,
		Items:             items,
	}

	result, err := h.Bookings.CreateBooking(r.Context(), b)
	if err != nil {
		log.Printf("create booking failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if !result.Available {
		writeJSON(w, r, http.StatusConflict, availabilityResponse(result))
		return
	}

	created, err := h.Bookings.GetBooking(r.Context(), b.ID)
	if err != nil {
		log.Printf("load created booking failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, bookingResponse(created))
}

// AvailabilityHandler answers whether a set of items is free over a date
// range. The result is structured data either way; conflicts are not errors.
type AvailabilityHandler struct {
	Bookings ports.BookingRepository
	Items    ports.InventoryRepository
}

func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.AvailabilityRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	deliveryDate, err := parseDate(req.DeliveryDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "delivery_date must be YYYY-MM-DD")
		return
	}
	pickupDate, err := parseDate(req.PickupDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "pickup_date must be YYYY-MM-DD")
		return
	}
	if pickupDate.Before(deliveryDate) {
		writeError(w, r, http.StatusBadRequest, "pickup_date must not be before delivery_date")
		return
	}

	bookings, err := h.Bookings.ListBookings(r.Context())
	if err != nil {
		log.Printf("availability check failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	items, err := h.Items.GetItems(r.Context(), req.ItemIDs)
	if err != nil {
		log.Printf("availability check failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	result := services.CheckAvailability(items, bookings, req.ItemIDs, deliveryDate, pickupDate)
	writeJSON(w, r, http.StatusOK, availabilityResponse(result))
}

func availabilityResponse(result domain.AvailabilityResult) dto.AvailabilityResponse {
	res := dto.AvailabilityResponse{
		Available: result.Available,
		Conflicts: make([]dto.AvailabilityConflictResponse, 0, len(result.Conflicts)),
		Message:   result.Message,
	}
	for _, c := range result.Conflicts {
		res.Conflicts = append(res.Conflicts, dto.AvailabilityConflictResponse{
			ItemID:           c.ItemID,
			ItemName:         c.ItemName,
			Reason:           c.Reason,
			ConflictingOrder: c.ConflictingOrder,
			ConflictDates:    c.ConflictDates,
		})
	}
	return res
}

func bookingResponse(b domain.Booking) dto.BookingResponse {
	items := make([]dto.BookingItemResponse, 0, len(b.Items))
	for _, bi := range b.Items {
		items = append(items, dto.BookingItemResponse{
			InventoryItemID:   bi.InventoryItemID,
			Name:              bi.Name,
			Quantity:          bi.Quantity,
			Price:             bi.Price,
			PickupWarehouseID: bi.PickupWarehouseID,
			ReturnWarehouseID: bi.ReturnWarehouseID,
		})
	}

	return dto.BookingResponse{
		BookingID:        b.ID,
		OrderNumber:      b.OrderNumber,
		CustomerName:     b.CustomerName,
		CustomerPhone:    b.CustomerPhone,
		DeliveryDate:     formatDate(b.DeliveryDate),
		DeliveryWindow:   b.DeliveryWindow,
		PickupDate:       formatDate(b.PickupDate),
		PickupWindow:     b.PickupWindow,
		DeliveryAddress:  b.DeliveryAddress,
		DeliveryLat:      b.DeliveryLat,
		DeliveryLng:      b.DeliveryLng,
		RentalDays:       b.RentalDays,
		Status:           string(b.Status),
		DeliveryDriverID: b.DeliveryDriverID,
		PickupDriverID:   b.PickupDriverID,
		Subtotal:         b.Subtotal,
		DeliveryFee:      b.DeliveryFee,
		Tip:              b.Tip,
		Total:            b.Total,
		Items:            items,
	}
}
