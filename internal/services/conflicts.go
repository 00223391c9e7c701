package services

import (
	"rental-dispatch-service/internal/domain"
)

// DetectAllConflicts finds every pair of non-terminal bookings that reserve
// the same inventory item over overlapping date ranges. Used by the admin
// dashboard to surface double-booked items.
//
// One conflict record is emitted per overlapping pair per item, not
// deduplicated across items. Output order follows input booking order, so a
// given snapshot always produces the same list.
func DetectAllConflicts(bookings []domain.Booking) []domain.ItemConflict {
	type itemBooking struct {
		booking domain.Booking
	}

	itemOrder := make([]string, 0)
	itemName := make(map[string]string)
	itemBookings := make(map[string][]itemBooking)

	for _, b := range bookings {
		if b.Status.Terminal() {
			continue
		}
		for _, bi := range b.Items {
			if _, seen := itemBookings[bi.InventoryItemID]; !seen {
				itemOrder = append(itemOrder, bi.InventoryItemID)
				itemName[bi.InventoryItemID] = bi.Name
			}
			itemBookings[bi.InventoryItemID] = append(itemBookings[bi.InventoryItemID], itemBooking{booking: b})
		}
	}

	conflicts := make([]domain.ItemConflict, 0)

	for _, itemID := range itemOrder {
		group := itemBookings[itemID]
		if len(group) < 2 {
			continue
		}

		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				b1 := group[i].booking
				b2 := group[j].booking

				if !domain.DatesOverlap(b1.DeliveryDate, b1.PickupDate, b2.DeliveryDate, b2.PickupDate) {
					continue
				}

				conflicts = append(conflicts, domain.ItemConflict{
					ItemID:   itemID,
					ItemName: itemName[itemID],
					Booking1: conflictSide(b1),
					Booking2: conflictSide(b2),
				})
			}
		}
	}

	return conflicts
}

func conflictSide(b domain.Booking) domain.ConflictBooking {
	return domain.ConflictBooking{
		BookingID:    b.ID,
		OrderNumber:  b.OrderNumber,
		CustomerName: b.CustomerName,
		DeliveryDate: b.DeliveryDate,
		PickupDate:   b.PickupDate,
	}
}
