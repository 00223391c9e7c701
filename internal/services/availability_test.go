package services

import (
	"testing"

	"rental-dispatch-service/internal/domain"
)

func itemMap(items ...domain.InventoryItem) map[string]domain.InventoryItem {
	m := make(map[string]domain.InventoryItem, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}

func TestCheckAvailabilityAllAvailable(t *testing.T) {
	items := itemMap(domain.InventoryItem{ID: "item-42", Name: "Giant Water Slide"})
	bookings := []domain.Booking{
		booking("b1", "o1", date(2026, 2, 1), date(2026, 2, 3), domain.StatusConfirmed, "item-other"),
	}

	result := CheckAvailability(items, bookings, []string{"item-42"}, date(2026, 2, 1), date(2026, 2, 3))

	if !result.Available {
		t.Fatalf("expected available, got conflicts: %+v", result.Conflicts)
	}
	if len(result.Conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %d", len(result.Conflicts))
	}
	if result.Message != "All items available" {
		t.Fatalf("message = %q, want %q", result.Message, "All items available")
	}
}

func TestCheckAvailabilityConflictDetails(t *testing.T) {
	items := itemMap(domain.InventoryItem{ID: "item-castle-01", Name: "Bounce House Castle"})
	bookings := []domain.Booking{
		booking("b1", "PTY-20260201-0001", date(2026, 2, 1), date(2026, 2, 3), domain.StatusConfirmed, "item-castle-01"),
	}

	result := CheckAvailability(items, bookings, []string{"item-castle-01"}, date(2026, 2, 3), date(2026, 2, 5))

	if result.Available {
		t.Fatal("expected unavailable")
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(result.Conflicts))
	}

	c := result.Conflicts[0]
	if c.ItemName != "Bounce House Castle" {
		t.Fatalf("item name = %q", c.ItemName)
	}
	if c.ConflictingOrder != "PTY-20260201-0001" {
		t.Fatalf("conflicting order = %q", c.ConflictingOrder)
	}
	if c.ConflictDates != "2026-02-01 to 2026-02-03" {
		t.Fatalf("conflict dates = %q", c.ConflictDates)
	}
	if result.Message != "Found 1 conflict(s)" {
		t.Fatalf("message = %q", result.Message)
	}
}

func TestCheckAvailabilityUnknownItem(t *testing.T) {
	result := CheckAvailability(itemMap(), nil, []string{"nope"}, date(2026, 2, 1), date(2026, 2, 2))

	if result.Available {
		t.Fatal("expected unavailable for unknown item")
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].Reason != "Item not found" {
		t.Fatalf("conflicts = %+v, want single 'Item not found'", result.Conflicts)
	}
}

func TestCheckAvailabilityIgnoresTerminalBookings(t *testing.T) {
	items := itemMap(domain.InventoryItem{ID: "x", Name: "Tent"})
	bookings := []domain.Booking{
		booking("b1", "o1", date(2026, 2, 1), date(2026, 2, 3), domain.StatusCancelled, "x"),
		booking("b2", "o2", date(2026, 2, 1), date(2026, 2, 3), domain.StatusCompleted, "x"),
	}

	result := CheckAvailability(items, bookings, []string{"x"}, date(2026, 2, 2), date(2026, 2, 4))
	if !result.Available {
		t.Fatalf("terminal bookings must not block: %+v", result.Conflicts)
	}
}

func TestCheckAvailabilityIdempotent(t *testing.T) {
	items := itemMap(domain.InventoryItem{ID: "x", Name: "Tent"})
	bookings := []domain.Booking{
		booking("b1", "o1", date(2026, 2, 1), date(2026, 2, 3), domain.StatusConfirmed, "x"),
	}

	first := CheckAvailability(items, bookings, []string{"x"}, date(2026, 2, 2), date(2026, 2, 4))
	second := CheckAvailability(items, bookings, []string{"x"}, date(2026, 2, 2), date(2026, 2, 4))

	if first.Available != second.Available || len(first.Conflicts) != len(second.Conflicts) {
		t.Fatalf("repeated checks diverged: %+v vs %+v", first, second)
	}
}
