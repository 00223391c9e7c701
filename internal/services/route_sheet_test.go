package services

import (
	"testing"

	"rental-dispatch-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func routeSheetFixtures() (domain.Driver, map[string]domain.Warehouse) {
	driver := domain.Driver{ID: "drv-001", Name: "Marcus Reed", IsActive: true}
	warehouses := map[string]domain.Warehouse{
		"wh-main": {ID: "wh-main", Name: "Main Warehouse", Address: "1901 W Madison St", Lat: 33.4461, Lng: -112.0978},
		"wh-east": {ID: "wh-east", Name: "East Valley Warehouse", Address: "450 E Southern Ave", Lat: 33.3932, Lng: -111.8245},
	}
	return driver, warehouses
}

func TestBuildRouteSheetStageOrderAndNumbering(t *testing.T) {
	driver, warehouses := routeSheetFixtures()
	day := date(2026, 9, 5)

	bookings := []domain.Booking{
		{
			ID: "b-pick", OrderNumber: "o-pick", CustomerName: "Pickup Customer",
			DeliveryDate: date(2026, 9, 3), PickupDate: day, PickupWindow: "4pm-6pm",
			DeliveryAddress: "somewhere", Status: domain.StatusActive,
			PickupDriverID: strPtr("drv-001"),
			Items: []domain.BookingItem{
				{InventoryItemID: "item-tent", Name: "Party Tent", ReturnWarehouseID: "wh-east"},
			},
		},
		{
			ID: "b-del", OrderNumber: "o-del", CustomerName: "Delivery Customer",
			DeliveryDate: day, DeliveryWindow: "9am-11am", PickupDate: date(2026, 9, 7),
			DeliveryAddress: "elsewhere", Status: domain.StatusConfirmed,
			DeliveryDriverID: strPtr("drv-001"),
			DeliveryFee:      45, Tip: 20,
			Items: []domain.BookingItem{
				{InventoryItemID: "item-castle", Name: "Bounce House Castle", PickupWarehouseID: "wh-main"},
			},
		},
	}

	sheet := BuildRouteSheet(driver, day, bookings, warehouses)

	if len(sheet.WarehousePickups) != 1 || len(sheet.Deliveries) != 1 ||
		len(sheet.Pickups) != 1 || len(sheet.WarehouseReturns) != 1 {
		t.Fatalf("stage sizes = %d/%d/%d/%d, want 1/1/1/1",
			len(sheet.WarehousePickups), len(sheet.Deliveries), len(sheet.Pickups), len(sheet.WarehouseReturns))
	}

	// Numbering runs warehouse pickups, deliveries, pickups, returns,
	// regardless of input booking order.
	if n := sheet.WarehousePickups[0].StopNumber; n != 1 {
		t.Fatalf("warehouse pickup stop number = %d, want 1", n)
	}
	if n := sheet.Deliveries[0].StopNumber; n != 2 {
		t.Fatalf("delivery stop number = %d, want 2", n)
	}
	if n := sheet.Pickups[0].StopNumber; n != 3 {
		t.Fatalf("pickup stop number = %d, want 3", n)
	}
	if n := sheet.WarehouseReturns[0].StopNumber; n != 4 {
		t.Fatalf("warehouse return stop number = %d, want 4", n)
	}
	if sheet.TotalStops != 4 {
		t.Fatalf("total stops = %d, want 4", sheet.TotalStops)
	}

	if sheet.WarehousePickups[0].WarehouseName != "Main Warehouse" {
		t.Fatalf("pickup warehouse = %q", sheet.WarehousePickups[0].WarehouseName)
	}
	if sheet.WarehouseReturns[0].WarehouseName != "East Valley Warehouse" {
		t.Fatalf("return warehouse = %q", sheet.WarehouseReturns[0].WarehouseName)
	}
}

func TestBuildRouteSheetEarningsCountDeliveriesOnly(t *testing.T) {
	driver, warehouses := routeSheetFixtures()
	day := date(2026, 9, 5)

	bookings := []domain.Booking{
		{
			ID: "b1", DeliveryDate: day, PickupDate: date(2026, 9, 7),
			Status: domain.StatusConfirmed, DeliveryDriverID: strPtr("drv-001"),
			DeliveryFee: 45, Tip: 20,
		},
		{
			ID: "b2", DeliveryDate: date(2026, 9, 3), PickupDate: day,
			Status: domain.StatusActive, PickupDriverID: strPtr("drv-001"),
			DeliveryFee: 100, Tip: 50, // pickup leg pays nothing
		},
	}

	sheet := BuildRouteSheet(driver, day, bookings, warehouses)
	if sheet.TotalEarnings != 65 {
		t.Fatalf("earnings = %v, want 65", sheet.TotalEarnings)
	}
}

func TestBuildRouteSheetSkipsOtherDriversAndDates(t *testing.T) {
	driver, warehouses := routeSheetFixtures()
	day := date(2026, 9, 5)

	bookings := []domain.Booking{
		{ID: "other-driver", DeliveryDate: day, PickupDate: day, Status: domain.StatusConfirmed, DeliveryDriverID: strPtr("drv-002")},
		{ID: "other-day", DeliveryDate: date(2026, 9, 6), PickupDate: date(2026, 9, 8), Status: domain.StatusConfirmed, DeliveryDriverID: strPtr("drv-001")},
		{ID: "cancelled", DeliveryDate: day, PickupDate: day, Status: domain.StatusCancelled, DeliveryDriverID: strPtr("drv-001")},
		{ID: "unassigned", DeliveryDate: day, PickupDate: day, Status: domain.StatusConfirmed},
	}

	sheet := BuildRouteSheet(driver, day, bookings, warehouses)
	if sheet.TotalStops != 0 {
		t.Fatalf("total stops = %d, want 0", sheet.TotalStops)
	}
}

func TestBuildRouteSheetNextBookingHint(t *testing.T) {
	driver, warehouses := routeSheetFixtures()
	day := date(2026, 9, 5)
	next := date(2026, 9, 10)

	bookings := []domain.Booking{
		{
			ID: "b-pick", DeliveryDate: date(2026, 9, 3), PickupDate: day,
			Status: domain.StatusActive, PickupDriverID: strPtr("drv-001"),
			Items: []domain.BookingItem{
				{InventoryItemID: "item-castle", Name: "Bounce House Castle", ReturnWarehouseID: "wh-main"},
			},
		},
		// Later booking of the same item. The earliest future date wins.
		{
			ID: "b-later", DeliveryDate: date(2026, 9, 12), PickupDate: date(2026, 9, 13),
			Status: domain.StatusPending,
			Items:  []domain.BookingItem{{InventoryItemID: "item-castle"}},
		},
		{
			ID: "b-next", DeliveryDate: next, PickupDate: date(2026, 9, 11),
			Status: domain.StatusPending,
			Items:  []domain.BookingItem{{InventoryItemID: "item-castle"}},
		},
		// Cancelled future bookings never count.
		{
			ID: "b-cancelled", DeliveryDate: date(2026, 9, 8), PickupDate: date(2026, 9, 9),
			Status: domain.StatusCancelled,
			Items:  []domain.BookingItem{{InventoryItemID: "item-castle"}},
		},
	}

	sheet := BuildRouteSheet(driver, day, bookings, warehouses)
	if len(sheet.Pickups) != 1 || len(sheet.Pickups[0].PickupItems) != 1 {
		t.Fatalf("unexpected pickup shape: %+v", sheet.Pickups)
	}

	item := sheet.Pickups[0].PickupItems[0]
	if !item.HasNextBooking {
		t.Fatal("expected a next-booking hint")
	}
	if item.NextBookingDate == nil || !item.NextBookingDate.Equal(next) {
		t.Fatalf("next booking date = %v, want %v", item.NextBookingDate, next)
	}
	if item.ReturnWarehouse != "Main Warehouse" {
		t.Fatalf("return warehouse = %q", item.ReturnWarehouse)
	}
}

func TestFindNextBookingExcludesSameDay(t *testing.T) {
	day := date(2026, 9, 5)
	bookings := []domain.Booking{
		{ID: "same-day", DeliveryDate: day, PickupDate: day, Status: domain.StatusPending,
			Items: []domain.BookingItem{{InventoryItemID: "x"}}},
	}

	if _, found := findNextBooking(bookings, "x", day); found {
		t.Fatal("a booking delivering on the pickup day itself is not a future booking")
	}
}

func TestBuildRouteSheetUnknownWarehouseName(t *testing.T) {
	driver, _ := routeSheetFixtures()
	day := date(2026, 9, 5)

	bookings := []domain.Booking{
		{
			ID: "b1", DeliveryDate: day, PickupDate: date(2026, 9, 7),
			Status: domain.StatusConfirmed, DeliveryDriverID: strPtr("drv-001"),
			Items: []domain.BookingItem{{InventoryItemID: "x", Name: "Tent", PickupWarehouseID: "wh-gone"}},
		},
	}

	sheet := BuildRouteSheet(driver, day, bookings, map[string]domain.Warehouse{})
	if len(sheet.WarehousePickups) != 1 {
		t.Fatalf("expected 1 warehouse pickup, got %d", len(sheet.WarehousePickups))
	}
	if name := sheet.WarehousePickups[0].WarehouseName; name != "Unknown" {
		t.Fatalf("warehouse name = %q, want Unknown", name)
	}
}
