package domain

import "time"

// Kind of physical visit on a driver's day.
type StopType string

const (
	StopWarehousePickup StopType = "warehouse_pickup"
	StopDelivery        StopType = "delivery"
	StopPickup          StopType = "pickup"
	StopWarehouseReturn StopType = "warehouse_return"
)

// LoadItem is one item to load or unload at a warehouse stop, tagged with the
// order it belongs to.
type LoadItem struct {
	Name        string
	OrderNumber string
}

// PickupItem is one item collected at a customer pickup. The next-booking
// fields tell the driver whether to return the item to its warehouse or hold
// it for redeployment.
type PickupItem struct {
	Name            string
	ReturnWarehouse string
	HasNextBooking  bool
	NextBookingDate *time.Time
}

// Stop is a single visit on a driver's itinerary. Stops are computed fresh on
// every route build and never persisted.
type Stop struct {
	StopNumber int
	Type       StopType

	BookingID   string
	OrderNumber string

	WarehouseID   string
	WarehouseName string

	CustomerName  string
	CustomerPhone string

	Address string
	Coords  *Coordinates

	TimeWindow   string
	Instructions string

	// Exactly one of these is populated, depending on Type.
	ItemNames   []string
	LoadItems   []LoadItem
	PickupItems []PickupItem

	DeliveryFee float64
	Tip         float64
	Status      string
}

// RouteSheet is a driver's full itinerary for one date. The four stop groups
// are kept separate because dispatch renders them as distinct sections;
// StopNumber runs across all groups in fixed stage order.
type RouteSheet struct {
	DriverID   string
	DriverName string
	Date       time.Time

	WarehousePickups []Stop
	Deliveries       []Stop
	Pickups          []Stop
	WarehouseReturns []Stop

	TotalStops    int
	TotalEarnings float64
}

// RouteStop is the slim stop shape used by route scoring and optimization.
type RouteStop struct {
	BookingID    string
	OrderNumber  string
	Address      string
	Type         StopType
	TimeWindow   string
	CustomerName string
	Coords       *Coordinates
}

// DriverRoute is a driver's derived stop sequence for one date. It is rebuilt
// on every request; bookings remain the source of truth.
type DriverRoute struct {
	DriverID           string
	DriverName         string
	Date               time.Time
	Stops              []RouteStop
	TotalDistanceMiles float64
}

// DriverRecommendation ranks one candidate driver for a new booking.
// Lower score is better.
type DriverRecommendation struct {
	DriverID           string
	DriverName         string
	Score              float64
	DistanceToDelivery float64
	RouteDisruption    float64
	CurrentStops       int
	Reason             string
}

// ConflictBooking identifies one side of a double-booking.
type ConflictBooking struct {
	BookingID    string
	OrderNumber  string
	CustomerName string
	DeliveryDate time.Time
	PickupDate   time.Time
}

// ItemConflict records one pair of bookings that reserve the same inventory
// item over overlapping dates.
type ItemConflict struct {
	ItemID   string
	ItemName string
	Booking1 ConflictBooking
	Booking2 ConflictBooking
}

// AvailabilityConflict explains why one requested item is unavailable.
type AvailabilityConflict struct {
	ItemID           string
	ItemName         string
	Reason           string
	ConflictingOrder string
	ConflictDates    string
}

// AvailabilityResult is the structured outcome of an availability check.
// Unavailability is data, not an error, so callers can report which items and
// dates collided.
type AvailabilityResult struct {
	Available bool
	Conflicts []AvailabilityConflict
	Message   string
}

// OptimizedRoute is a travel-ordered stop sequence for one driver group on
// one date, with aggregate distance and a rough duration estimate.
type OptimizedRoute struct {
	DriverID        *string
	DriverName      *string
	TotalStops      int
	TotalDistanceKm float64
	EstimatedHours  float64
	Stops           []RouteStop
	WarehouseStart  string
	WarehouseEnd    string
}
