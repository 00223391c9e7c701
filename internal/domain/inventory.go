package domain

// InventoryItem is a rentable piece of party equipment.
type InventoryItem struct {
	ID       string
	Name     string
	Category string

	// Nil while the item is out on rental.
	CurrentWarehouseID *string
	HomeWarehouseID    string

	MinSpaceSqft    int
	RequiresPower   bool
	AllowedSurfaces []string
}

// SpaceRequirements describes a customer's party area, used to filter items
// that physically fit.
type SpaceRequirements struct {
	AreaSqft int
	Surface  string
	HasPower bool
}

// Suits reports whether the item fits the given space: enough area, a
// compatible surface, and power if the item needs it. An empty
// AllowedSurfaces list means any surface is acceptable.
func (it InventoryItem) Suits(req SpaceRequirements) bool {
	if it.MinSpaceSqft > 0 && req.AreaSqft < it.MinSpaceSqft {
		return false
	}
	if len(it.AllowedSurfaces) > 0 {
		ok := false
		for _, s := range it.AllowedSurfaces {
			if s == req.Surface {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if it.RequiresPower && !req.HasPower {
		return false
	}
	return true
}
