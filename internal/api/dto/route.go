package dto

type LoadItemResponse struct {
	Name        string `json:"name"`
	OrderNumber string `json:"order_number"`
}

type PickupItemResponse struct {
	Name            string  `json:"name"`
	ReturnWarehouse string  `json:"return_warehouse"`
	HasNextBooking  bool    `json:"has_next_booking"`
	NextBookingDate *string `json:"next_booking_date"`
}

type StopResponse struct {
	StopNumber    int                  `json:"stop_number"`
	Type          string               `json:"type"`
	BookingID     string               `json:"booking_id,omitempty"`
	OrderNumber   string               `json:"order_number,omitempty"`
	WarehouseID   string               `json:"warehouse_id,omitempty"`
	WarehouseName string               `json:"warehouse_name,omitempty"`
	CustomerName  string               `json:"customer_name,omitempty"`
	CustomerPhone string               `json:"customer_phone,omitempty"`
	Address       string               `json:"address"`
	Lat           *float64             `json:"lat"`
	Lng           *float64             `json:"lng"`
	TimeWindow    string               `json:"time_window,omitempty"`
	Instructions  string               `json:"instructions,omitempty"`
	Items         []string             `json:"items,omitempty"`
	LoadItems     []LoadItemResponse   `json:"load_items,omitempty"`
	PickupItems   []PickupItemResponse `json:"pickup_items,omitempty"`
	DeliveryFee   float64              `json:"delivery_fee,omitempty"`
	Tip           float64              `json:"tip,omitempty"`
	Status        string               `json:"status,omitempty"`
}

type RouteSheetResponse struct {
	DriverID         string         `json:"driver_id"`
	DriverName       string         `json:"driver_name"`
	RouteDate        string         `json:"route_date"`
	TotalStops       int            `json:"total_stops"`
	TotalEarnings    float64        `json:"total_earnings"`
	WarehousePickups []StopResponse `json:"warehouse_pickups"`
	Deliveries       []StopResponse `json:"deliveries"`
	Pickups          []StopResponse `json:"pickups"`
	WarehouseReturns []StopResponse `json:"warehouse_returns"`
}

type RecommendationResponse struct {
	DriverID           string  `json:"driver_id"`
	DriverName         string  `json:"driver_name"`
	Score              float64 `json:"score"`
	DistanceToDelivery float64 `json:"distance_to_delivery"`
	RouteDisruption    float64 `json:"route_disruption"`
	CurrentStops       int     `json:"current_stops"`
	Reason             string  `json:"reason"`
}

type ListRecommendationsResponse struct {
	BookingID       string                   `json:"booking_id"`
	DeliveryAddress string                   `json:"delivery_address"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

type OptimizedStopResponse struct {
	BookingID    string   `json:"booking_id"`
	OrderNumber  string   `json:"order_number"`
	Address      string   `json:"address"`
	Lat          *float64 `json:"latitude"`
	Lng          *float64 `json:"longitude"`
	TimeWindow   string   `json:"time_window,omitempty"`
	CustomerName string   `json:"customer_name"`
	DeliveryType string   `json:"delivery_type"`
}

type OptimizedRouteResponse struct {
	DriverID        *string                 `json:"driver_id"`
	DriverName      *string                 `json:"driver_name"`
	TotalStops      int                     `json:"total_stops"`
	TotalDistanceKm float64                 `json:"total_distance_km"`
	EstimatedHours  float64                 `json:"estimated_duration_hours"`
	Stops           []OptimizedStopResponse `json:"stops"`
	WarehouseStart  string                  `json:"warehouse_start"`
	WarehouseEnd    string                  `json:"warehouse_end"`
}

type DistanceResponse struct {
	DistanceKm    float64 `json:"distance_km"`
	DistanceMiles float64 `json:"distance_miles"`
}
