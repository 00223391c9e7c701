package services

import (
	"regexp"
	"testing"

	"rental-dispatch-service/internal/domain"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	now := date(2026, 9, 5)
	pattern := regexp.MustCompile(`^PTY-20260905-\d{4}$`)

	for i := 0; i < 20; i++ {
		if got := GenerateOrderNumber(now); !pattern.MatchString(got) {
			t.Fatalf("order number %q does not match PTY-YYYYMMDD-NNNN", got)
		}
	}
}

func TestCalculateRentalDays(t *testing.T) {
	tests := []struct {
		name     string
		delivery int
		pickup   int
		want     int
	}{
		{"same day", 5, 5, 1},
		{"overnight", 5, 6, 2},
		{"weekend", 5, 7, 3},
	}

	for _, tt := range tests {
		got := CalculateRentalDays(date(2026, 9, tt.delivery), date(2026, 9, tt.pickup))
		if got != tt.want {
			t.Fatalf("%s: rental days = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestCalculateBookingTotals(t *testing.T) {
	items := []domain.BookingItem{
		{InventoryItemID: "a", Price: 250},
		{InventoryItemID: "b", Price: 90},
	}

	totals := CalculateBookingTotals(items, 45, 20)
	if totals.Subtotal != 340 {
		t.Fatalf("subtotal = %v, want 340", totals.Subtotal)
	}
	if totals.Total != 405 {
		t.Fatalf("total = %v, want 405", totals.Total)
	}
}

func TestFilterSuitableItems(t *testing.T) {
	items := []domain.InventoryItem{
		{ID: "castle", MinSpaceSqft: 225, RequiresPower: true, AllowedSurfaces: []string{"grass", "turf"}},
		{ID: "tables", MinSpaceSqft: 0, AllowedSurfaces: nil},
		{ID: "slide", MinSpaceSqft: 400, RequiresPower: true, AllowedSurfaces: []string{"grass"}},
	}

	req := domain.SpaceRequirements{AreaSqft: 300, Surface: "grass", HasPower: true}
	got := FilterSuitableItems(items, req)

	if len(got) != 2 {
		t.Fatalf("expected 2 suitable items, got %d", len(got))
	}
	if got[0].ID != "castle" || got[1].ID != "tables" {
		t.Fatalf("suitable = [%s %s], want [castle tables]", got[0].ID, got[1].ID)
	}

	noPower := domain.SpaceRequirements{AreaSqft: 1000, Surface: "grass", HasPower: false}
	if got := FilterSuitableItems(items, noPower); len(got) != 1 || got[0].ID != "tables" {
		t.Fatalf("no-power filter = %+v, want only tables", got)
	}

	concrete := domain.SpaceRequirements{AreaSqft: 1000, Surface: "concrete", HasPower: true}
	if got := FilterSuitableItems(items, concrete); len(got) != 1 || got[0].ID != "tables" {
		t.Fatalf("surface filter = %+v, want only tables", got)
	}
}
