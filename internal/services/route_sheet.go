package services

import (
	"time"

	"rental-dispatch-service/internal/domain"
)

// BuildRouteSheet assembles a driver's full itinerary for one date, in fixed
// stage order:
//
//  1. warehouse pickups (load items, grouped by pickup warehouse)
//  2. customer deliveries
//  3. customer pickups (with a redeploy hint per item)
//  4. warehouse returns (grouped by return warehouse)
//
// Stop numbers run across all four stages. Earnings sum delivery fee + tip
// over this driver's delivery bookings only; customer pickups do not pay in
// this accounting.
func BuildRouteSheet(
	driver domain.Driver,
	date time.Time,
	bookings []domain.Booking,
	warehouses map[string]domain.Warehouse,
) domain.RouteSheet {
	deliveries := make([]domain.Booking, 0)
	pickups := make([]domain.Booking, 0)

	for _, b := range bookings {
		if b.Status.Terminal() {
			continue
		}
		if b.DeliveryDriverID != nil && *b.DeliveryDriverID == driver.ID && domain.SameDay(b.DeliveryDate, date) {
			deliveries = append(deliveries, b)
		}
		if b.PickupDriverID != nil && *b.PickupDriverID == driver.ID && domain.SameDay(b.PickupDate, date) {
			pickups = append(pickups, b)
		}
	}

	sheet := domain.RouteSheet{
		DriverID:   driver.ID,
		DriverName: driver.Name,
		Date:       date,
	}

	stopNumber := 1

	// Stage 1: one stop per distinct pickup warehouse, in first-seen order,
	// listing every item to load from it.
	pickupGroups, pickupOrder := groupLoadItems(deliveries, func(bi domain.BookingItem) string {
		return bi.PickupWarehouseID
	})
	for _, whID := range pickupOrder {
		sheet.WarehousePickups = append(sheet.WarehousePickups,
			warehouseStop(stopNumber, domain.StopWarehousePickup, whID, warehouses, pickupGroups[whID]))
		stopNumber++
	}

	// Stage 2: customer deliveries.
	for _, b := range deliveries {
		names := make([]string, 0, len(b.Items))
		for _, bi := range b.Items {
			names = append(names, bi.Name)
		}

		sheet.Deliveries = append(sheet.Deliveries, domain.Stop{
			StopNumber:    stopNumber,
			Type:          domain.StopDelivery,
			BookingID:     b.ID,
			OrderNumber:   b.OrderNumber,
			CustomerName:  b.CustomerName,
			CustomerPhone: b.CustomerPhone,
			Address:       b.DeliveryAddress,
			Coords:        bookingCoords(b),
			TimeWindow:    b.DeliveryWindow,
			ItemNames:     names,
			Instructions:  b.SetupInstructions,
			DeliveryFee:   b.DeliveryFee,
			Tip:           b.Tip,
			Status:        string(b.Status),
		})
		stopNumber++
	}

	// Stage 3: customer pickups. Each item resolves whether a later booking
	// exists, so the driver knows to return it or hold it for redeployment.
	for _, b := range pickups {
		items := make([]domain.PickupItem, 0, len(b.Items))
		for _, bi := range b.Items {
			returnName := "Default"
			if wh, ok := warehouses[bi.ReturnWarehouseID]; ok {
				returnName = wh.Name
			}

			next, found := findNextBooking(bookings, bi.InventoryItemID, date)
			item := domain.PickupItem{
				Name:            bi.Name,
				ReturnWarehouse: returnName,
				HasNextBooking:  found,
			}
			if found {
				d := next.DeliveryDate
				item.NextBookingDate = &d
			}
			items = append(items, item)
		}

		sheet.Pickups = append(sheet.Pickups, domain.Stop{
			StopNumber:    stopNumber,
			Type:          domain.StopPickup,
			BookingID:     b.ID,
			OrderNumber:   b.OrderNumber,
			CustomerName:  b.CustomerName,
			CustomerPhone: b.CustomerPhone,
			Address:       b.DeliveryAddress,
			Coords:        bookingCoords(b),
			TimeWindow:    b.PickupWindow,
			PickupItems:   items,
			Instructions:  b.SetupInstructions,
			Status:        string(b.Status),
		})
		stopNumber++
	}

	// Stage 4: warehouse returns, mirroring stage 1 over the pickups.
	returnGroups, returnOrder := groupLoadItems(pickups, func(bi domain.BookingItem) string {
		return bi.ReturnWarehouseID
	})
	for _, whID := range returnOrder {
		sheet.WarehouseReturns = append(sheet.WarehouseReturns,
			warehouseStop(stopNumber, domain.StopWarehouseReturn, whID, warehouses, returnGroups[whID]))
		stopNumber++
	}

	sheet.TotalStops = stopNumber - 1

	for _, b := range deliveries {
		sheet.TotalEarnings += b.DeliveryFee + b.Tip
	}

	return sheet
}

// findNextBooking returns the earliest non-cancelled booking that reserves
// the item with a delivery date strictly after the given date.
func findNextBooking(bookings []domain.Booking, itemID string, after time.Time) (domain.Booking, bool) {
	var best domain.Booking
	found := false

	for _, b := range bookings {
		if b.Status == domain.StatusCancelled {
			continue
		}
		if !b.DeliveryDate.After(after) {
			continue
		}
		if !bookingHasItem(b, itemID) {
			continue
		}
		if !found || b.DeliveryDate.Before(best.DeliveryDate) {
			best = b
			found = true
		}
	}

	return best, found
}

func groupLoadItems(
	bookings []domain.Booking,
	warehouseOf func(domain.BookingItem) string,
) (map[string][]domain.LoadItem, []string) {
	groups := make(map[string][]domain.LoadItem)
	order := make([]string, 0)

	for _, b := range bookings {
		for _, bi := range b.Items {
			whID := warehouseOf(bi)
			if whID == "" {
				continue
			}
			if _, seen := groups[whID]; !seen {
				order = append(order, whID)
			}
			groups[whID] = append(groups[whID], domain.LoadItem{
				Name:        bi.Name,
				OrderNumber: b.OrderNumber,
			})
		}
	}

	return groups, order
}

func warehouseStop(
	stopNumber int,
	stopType domain.StopType,
	warehouseID string,
	warehouses map[string]domain.Warehouse,
	items []domain.LoadItem,
) domain.Stop {
	stop := domain.Stop{
		StopNumber:    stopNumber,
		Type:          stopType,
		WarehouseID:   warehouseID,
		WarehouseName: "Unknown",
		LoadItems:     items,
		Status:        "pending",
	}

	if wh, ok := warehouses[warehouseID]; ok {
		stop.WarehouseName = wh.Name
		stop.Address = wh.Address
		stop.Coords = &domain.Coordinates{Lat: wh.Lat, Lon: wh.Lng}
	}

	return stop
}

func bookingCoords(b domain.Booking) *domain.Coordinates {
	if b.DeliveryLat == nil || b.DeliveryLng == nil {
		return nil
	}
	return &domain.Coordinates{Lat: *b.DeliveryLat, Lon: *b.DeliveryLng}
}
