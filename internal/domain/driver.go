package domain

// Driver is a delivery driver with cumulative performance counters.
// Drivers do not own bookings; bookings reference drivers by id.
type Driver struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	LicenseNumber string
	IsActive      bool

	TotalDeliveries int
	TotalEarnings   float64
	OnTimeCount     int
	LateCount       int
	Rating          float64
}
