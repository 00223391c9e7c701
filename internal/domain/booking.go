package domain

import "time"

// Booking lifecycle states.
type BookingStatus string

const (
	StatusPending        BookingStatus = "pending"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusOutForDelivery BookingStatus = "out_for_delivery"
	StatusActive         BookingStatus = "active"
	StatusPickupSchedule BookingStatus = "pickup_scheduled"
	StatusCompleted      BookingStatus = "completed"
	StatusCancelled      BookingStatus = "cancelled"
)

// Terminal bookings are excluded from conflict, availability and route
// computations.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// BookingItem links a booking to an inventory item, recording the warehouse
// the item is loaded from and the warehouse it must be returned to.
type BookingItem struct {
	InventoryItemID   string
	Name              string
	Quantity          int
	Price             float64
	PickupWarehouseID string
	ReturnWarehouseID string
}

// Booking is a customer's reservation of inventory items for a
// delivery/pickup date range.
//
// Dates are date-only values at UTC midnight. Invariant (enforced at the
// creation boundary): PickupDate is never before DeliveryDate.
type Booking struct {
	ID            string
	OrderNumber   string
	CustomerID    string
	CustomerName  string
	CustomerPhone string

	DeliveryDate   time.Time
	DeliveryWindow string
	PickupDate     time.Time
	PickupWindow   string

	DeliveryAddress string
	DeliveryLat     *float64
	DeliveryLng     *float64

	RentalDays int
	Status     BookingStatus

	// Nullable driver assignments; bookings reference drivers by id.
	DeliveryDriverID *string
	PickupDriverID   *string

	Subtotal    float64
	DeliveryFee float64
	Tip         float64
	Total       float64

	SetupInstructions string

	Items []BookingItem
}

// DatesOverlap reports whether two inclusive date ranges share at least one
// day. Both ends are inclusive: a pickup and a delivery on the same day
// still collide over that day.
func DatesOverlap(delivery1, pickup1, delivery2, pickup2 time.Time) bool {
	return !delivery1.After(pickup2) && !delivery2.After(pickup1)
}

// SameDay reports whether two date-only values fall on the same day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
