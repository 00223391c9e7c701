package domain

// Warehouse is a storage location. It acts as the route depot and as the
// pickup/return endpoint for booking items.
type Warehouse struct {
	ID       string
	Name     string
	Address  string
	Lat      float64
	Lng      float64
	IsActive bool
}
