package services

import (
	"fmt"
	"time"

	"rental-dispatch-service/internal/domain"
)

// CheckAvailability reports, for each requested item, conflicts against
// existing non-terminal bookings over the requested inclusive date range.
//
// Unavailability is returned as structured data, never as an error, so the
// booking flow can tell the customer exactly which items and dates collided.
// The check itself holds no lock; callers that go on to create a booking must
// run check-then-insert inside one transaction (see repositories.CreateBooking).
func CheckAvailability(
	items map[string]domain.InventoryItem,
	bookings []domain.Booking,
	itemIDs []string,
	deliveryDate time.Time,
	pickupDate time.Time,
) domain.AvailabilityResult {
	overlapping := make([]domain.Booking, 0)
	for _, b := range bookings {
		if b.Status.Terminal() {
			continue
		}
		if domain.DatesOverlap(b.DeliveryDate, b.PickupDate, deliveryDate, pickupDate) {
			overlapping = append(overlapping, b)
		}
	}

	conflicts := make([]domain.AvailabilityConflict, 0)

	for _, itemID := range itemIDs {
		item, ok := items[itemID]
		if !ok {
			conflicts = append(conflicts, domain.AvailabilityConflict{
				ItemID: itemID,
				Reason: "Item not found",
			})
			continue
		}

		for _, b := range overlapping {
			if !bookingHasItem(b, itemID) {
				continue
			}
			conflicts = append(conflicts, domain.AvailabilityConflict{
				ItemID:           itemID,
				ItemName:         item.Name,
				ConflictingOrder: b.OrderNumber,
				ConflictDates: fmt.Sprintf(
					"%s to %s",
					b.DeliveryDate.Format("2006-01-02"),
					b.PickupDate.Format("2006-01-02"),
				),
			})
		}
	}

	available := len(conflicts) == 0
	message := "All items available"
	if !available {
		message = fmt.Sprintf("Found %d conflict(s)", len(conflicts))
	}

	return domain.AvailabilityResult{
		Available: available,
		Conflicts: conflicts,
		Message:   message,
	}
}

func bookingHasItem(b domain.Booking, itemID string) bool {
	for _, bi := range b.Items {
		if bi.InventoryItemID == itemID {
			return true
		}
	}
	return false
}
