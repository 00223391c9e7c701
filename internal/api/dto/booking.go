package dto

type BookingItemRequest struct {
	InventoryItemID   string  `json:"inventory_item_id"`
	Quantity          int     `json:"quantity"`
	Price             float64 `json:"price"`
	PickupWarehouseID string  `json:"pickup_warehouse_id"`
	ReturnWarehouseID string  `json:"return_warehouse_id"`
}

type CreateBookingRequest struct {
	CustomerID      string               `json:"customer_id"`
	CustomerName    string               `json:"customer_name"`
	CustomerPhone   string               `json:"customer_phone"`
	DeliveryDate    string               `json:"delivery_date"`
	DeliveryWindow  string               `json:"delivery_window"`
	PickupDate      string               `json:"pickup_date"`
	PickupWindow    string               `json:"pickup_window"`
	DeliveryAddress string               `json:"delivery_address"`
	DeliveryFee     float64              `json:"delivery_fee"`
	Tip             float64              `json:"tip"`
	Instructions    string               `json:"setup_instructions"`
	Items           []BookingItemRequest `json:"items"`
}

type BookingItemResponse struct {
	InventoryItemID   string  `json:"inventory_item_id"`
	Name              string  `json:"name"`
	Quantity          int     `json:"quantity"`
	Price             float64 `json:"price"`
	PickupWarehouseID string  `json:"pickup_warehouse_id,omitempty"`
	ReturnWarehouseID string  `json:"return_warehouse_id,omitempty"`
}

type BookingResponse struct {
	BookingID        string                `json:"booking_id"`
	OrderNumber      string                `json:"order_number"`
	CustomerName     string                `json:"customer_name"`
	CustomerPhone    string                `json:"customer_phone"`
	DeliveryDate     string                `json:"delivery_date"`
	DeliveryWindow   string                `json:"delivery_window,omitempty"`
	PickupDate       string                `json:"pickup_date"`
	PickupWindow     string                `json:"pickup_window,omitempty"`
	DeliveryAddress  string                `json:"delivery_address"`
	DeliveryLat      *float64              `json:"delivery_lat"`
	DeliveryLng      *float64              `json:"delivery_lng"`
	RentalDays       int                   `json:"rental_days"`
	Status           string                `json:"status"`
	DeliveryDriverID *string               `json:"delivery_driver_id"`
	PickupDriverID   *string               `json:"pickup_driver_id"`
	Subtotal         float64               `json:"subtotal"`
	DeliveryFee      float64               `json:"delivery_fee"`
	Tip              float64               `json:"tip"`
	Total            float64               `json:"total"`
	Items            []BookingItemResponse `json:"items"`
}

type ListBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

type AvailabilityRequest struct {
	ItemIDs      []string `json:"item_ids"`
	DeliveryDate string   `json:"delivery_date"`
	PickupDate   string   `json:"pickup_date"`
}

type AvailabilityConflictResponse struct {
	ItemID           string `json:"item_id"`
	ItemName         string `json:"item_name,omitempty"`
	Reason           string `json:"reason,omitempty"`
	ConflictingOrder string `json:"conflicting_booking,omitempty"`
	ConflictDates    string `json:"conflict_dates,omitempty"`
}

type AvailabilityResponse struct {
	Available bool                           `json:"available"`
	Conflicts []AvailabilityConflictResponse `json:"conflicts"`
	Message   string                         `json:"message"`
}
