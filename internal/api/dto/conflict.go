package dto

type ConflictBookingResponse struct {
	BookingID    string `json:"booking_id"`
	OrderNumber  string `json:"order_number"`
	CustomerName string `json:"customer_name"`
	DeliveryDate string `json:"delivery_date"`
	PickupDate   string `json:"pickup_date"`
}

type ConflictResponse struct {
	ItemID   string                  `json:"item_id"`
	ItemName string                  `json:"item_name"`
	Booking1 ConflictBookingResponse `json:"booking1"`
	Booking2 ConflictBookingResponse `json:"booking2"`
}

type ListConflictsResponse struct {
	Conflicts []ConflictResponse `json:"conflicts"`
}

type DriverResponse struct {
	DriverID        string  `json:"driver_id"`
	Name            string  `json:"name"`
	Email           string  `json:"email,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	IsActive        bool    `json:"is_active"`
	TotalDeliveries int     `json:"total_deliveries"`
	TotalEarnings   float64 `json:"total_earnings"`
	Rating          float64 `json:"rating"`
}

type ListDriversResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}

type WarehouseResponse struct {
	WarehouseID string  `json:"warehouse_id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	IsActive    bool    `json:"is_active"`
}

type ListWarehousesResponse struct {
	Warehouses []WarehouseResponse `json:"warehouses"`
}
