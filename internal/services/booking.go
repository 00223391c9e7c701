package services

import (
	"fmt"
	"math/rand/v2"
	"time"

	"rental-dispatch-service/internal/domain"
)

// GenerateOrderNumber produces a customer-facing order number in the form
// PTY-YYYYMMDD-NNNN.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("PTY-%s-%04d", now.Format("20060102"), rand.IntN(10000))
}

// CalculateRentalDays counts the days in an inclusive delivery/pickup range,
// never less than 1.
func CalculateRentalDays(deliveryDate, pickupDate time.Time) int {
	days := int(pickupDate.Sub(deliveryDate).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// BookingTotals sums the agreed item prices with the delivery fee and tip.
type BookingTotals struct {
	Subtotal    float64
	DeliveryFee float64
	Tip         float64
	Total       float64
}

func CalculateBookingTotals(items []domain.BookingItem, deliveryFee, tip float64) BookingTotals {
	subtotal := 0.0
	for _, it := range items {
		subtotal += it.Price
	}
	return BookingTotals{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Tip:         tip,
		Total:       subtotal + deliveryFee + tip,
	}
}

// FilterSuitableItems returns the items that fit a customer's space: enough
// area, a compatible surface, and power where required.
func FilterSuitableItems(items []domain.InventoryItem, req domain.SpaceRequirements) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0, len(items))
	for _, it := range items {
		if it.Suits(req) {
			out = append(out, it)
		}
	}
	return out
}
