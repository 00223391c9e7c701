package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// InitSchema creates the database schema when it does not exist yet.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS warehouses (
			warehouse_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lng DOUBLE PRECISION NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		);`,
		`CREATE TABLE IF NOT EXISTS drivers (
			driver_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			license_number TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			total_deliveries INTEGER NOT NULL DEFAULT 0,
			total_earnings DOUBLE PRECISION NOT NULL DEFAULT 0,
			on_time_count INTEGER NOT NULL DEFAULT 0,
			late_count INTEGER NOT NULL DEFAULT 0,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS inventory_items (
			inventory_item_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			current_warehouse_id TEXT REFERENCES warehouses(warehouse_id),
			home_warehouse_id TEXT NOT NULL REFERENCES warehouses(warehouse_id),
			min_space_sqft INTEGER NOT NULL DEFAULT 0,
			requires_power BOOLEAN NOT NULL DEFAULT FALSE,
			allowed_surfaces TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS bookings (
			booking_id TEXT PRIMARY KEY,
			order_number TEXT NOT NULL UNIQUE,
			customer_id TEXT NOT NULL DEFAULT '',
			customer_name TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL DEFAULT '',
			delivery_date DATE NOT NULL,
			delivery_window TEXT NOT NULL DEFAULT '',
			pickup_date DATE NOT NULL,
			pickup_window TEXT NOT NULL DEFAULT '',
			delivery_address TEXT NOT NULL,
			delivery_lat DOUBLE PRECISION,
			delivery_lng DOUBLE PRECISION,
			rental_days INTEGER NOT NULL DEFAULT 1,
			status TEXT NOT NULL DEFAULT 'pending',
			delivery_driver_id TEXT REFERENCES drivers(driver_id),
			pickup_driver_id TEXT REFERENCES drivers(driver_id),
			subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
			delivery_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
			tip DOUBLE PRECISION NOT NULL DEFAULT 0,
			total DOUBLE PRECISION NOT NULL DEFAULT 0,
			setup_instructions TEXT NOT NULL DEFAULT '',
			CHECK (pickup_date >= delivery_date)
		);`,
		`CREATE TABLE IF NOT EXISTS booking_items (
			booking_id TEXT NOT NULL REFERENCES bookings(booking_id) ON DELETE CASCADE,
			inventory_item_id TEXT NOT NULL REFERENCES inventory_items(inventory_item_id),
			quantity INTEGER NOT NULL DEFAULT 1,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			pickup_warehouse_id TEXT REFERENCES warehouses(warehouse_id),
			return_warehouse_id TEXT REFERENCES warehouses(warehouse_id),
			PRIMARY KEY (booking_id, inventory_item_id)
		);`,
		`CREATE TABLE IF NOT EXISTS geocode_cache (
			address TEXT PRIMARY KEY,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_delivery_date ON bookings(delivery_date);`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_pickup_date ON bookings(pickup_date);`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status);`,
		`CREATE INDEX IF NOT EXISTS idx_booking_items_item ON booking_items(inventory_item_id);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type WarehouseSeed struct {
	WarehouseID string  `json:"warehouse_id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	IsActive    bool    `json:"is_active"`
}

type DriverSeed struct {
	DriverID string `json:"driver_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}

type ItemSeed struct {
	InventoryItemID string `json:"inventory_item_id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	HomeWarehouseID string `json:"home_warehouse_id"`
	MinSpaceSqft    int    `json:"min_space_sqft"`
	RequiresPower   bool   `json:"requires_power"`
	AllowedSurfaces string `json:"allowed_surfaces"`
}

type BookingItemSeed struct {
	InventoryItemID   string  `json:"inventory_item_id"`
	Quantity          int     `json:"quantity"`
	Price             float64 `json:"price"`
	PickupWarehouseID string  `json:"pickup_warehouse_id"`
	ReturnWarehouseID string  `json:"return_warehouse_id"`
}

type BookingSeed struct {
	BookingID        string            `json:"booking_id"`
	OrderNumber      string            `json:"order_number"`
	CustomerName     string            `json:"customer_name"`
	CustomerPhone    string            `json:"customer_phone"`
	DeliveryDate     string            `json:"delivery_date"`
	DeliveryWindow   string            `json:"delivery_window"`
	PickupDate       string            `json:"pickup_date"`
	PickupWindow     string            `json:"pickup_window"`
	DeliveryAddress  string            `json:"delivery_address"`
	DeliveryLat      *float64          `json:"delivery_lat"`
	DeliveryLng      *float64          `json:"delivery_lng"`
	Status           string            `json:"status"`
	DeliveryDriverID *string           `json:"delivery_driver_id"`
	PickupDriverID   *string           `json:"pickup_driver_id"`
	DeliveryFee      float64           `json:"delivery_fee"`
	Tip              float64           `json:"tip"`
	Items            []BookingItemSeed `json:"items"`
}

type Seed struct {
	Warehouses []WarehouseSeed `json:"warehouses"`
	Drivers    []DriverSeed    `json:"drivers"`
	Items      []ItemSeed      `json:"items"`
	Bookings   []BookingSeed   `json:"bookings"`
}

// SeedFromJSON populates the database with demo data from a JSON file.
// Rows are upserted so repeated runs are harmless.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, w := range seed.Warehouses {
		if strings.TrimSpace(w.WarehouseID) == "" {
			return errors.New("seed: warehouse with empty id")
		}
		_, err := tx.Exec(`
		INSERT INTO warehouses (warehouse_id, name, address, lat, lng, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (warehouse_id) DO UPDATE
		SET name = EXCLUDED.name, address = EXCLUDED.address,
			lat = EXCLUDED.lat, lng = EXCLUDED.lng, is_active = EXCLUDED.is_active;
		`, w.WarehouseID, w.Name, w.Address, w.Lat, w.Lng, w.IsActive)
		if err != nil {
			return fmt.Errorf("seed: insert warehouse %q: %w", w.WarehouseID, err)
		}
	}

	for _, d := range seed.Drivers {
		if strings.TrimSpace(d.DriverID) == "" {
			return errors.New("seed: driver with empty id")
		}
		_, err := tx.Exec(`
		INSERT INTO drivers (driver_id, name, email, phone, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (driver_id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email,
			phone = EXCLUDED.phone, is_active = EXCLUDED.is_active;
		`, d.DriverID, d.Name, d.Email, d.Phone, d.IsActive)
		if err != nil {
			return fmt.Errorf("seed: insert driver %q: %w", d.DriverID, err)
		}
	}

	for _, it := range seed.Items {
		if strings.TrimSpace(it.InventoryItemID) == "" {
			return errors.New("seed: inventory item with empty id")
		}
		_, err := tx.Exec(`
		INSERT INTO inventory_items (
			inventory_item_id, name, category, home_warehouse_id,
			min_space_sqft, requires_power, allowed_surfaces
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (inventory_item_id) DO UPDATE
		SET name = EXCLUDED.name, category = EXCLUDED.category,
			home_warehouse_id = EXCLUDED.home_warehouse_id,
			min_space_sqft = EXCLUDED.min_space_sqft,
			requires_power = EXCLUDED.requires_power,
			allowed_surfaces = EXCLUDED.allowed_surfaces;
		`, it.InventoryItemID, it.Name, it.Category, it.HomeWarehouseID,
			it.MinSpaceSqft, it.RequiresPower, it.AllowedSurfaces)
		if err != nil {
			return fmt.Errorf("seed: insert item %q: %w", it.InventoryItemID, err)
		}
	}

	for _, b := range seed.Bookings {
		if strings.TrimSpace(b.BookingID) == "" {
			return errors.New("seed: booking with empty id")
		}
		_, err := tx.Exec(`
		INSERT INTO bookings (
			booking_id, order_number, customer_name, customer_phone,
			delivery_date, delivery_window, pickup_date, pickup_window,
			delivery_address, delivery_lat, delivery_lng, status,
			delivery_driver_id, pickup_driver_id, delivery_fee, tip
		)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7::date, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (booking_id) DO NOTHING;
		`, b.BookingID, b.OrderNumber, b.CustomerName, b.CustomerPhone,
			b.DeliveryDate, b.DeliveryWindow, b.PickupDate, b.PickupWindow,
			b.DeliveryAddress, b.DeliveryLat, b.DeliveryLng, b.Status,
			b.DeliveryDriverID, b.PickupDriverID, b.DeliveryFee, b.Tip)
		if err != nil {
			return fmt.Errorf("seed: insert booking %q: %w", b.BookingID, err)
		}

		for _, bi := range b.Items {
			_, err := tx.Exec(`
			INSERT INTO booking_items (
				booking_id, inventory_item_id, quantity, price,
				pickup_warehouse_id, return_warehouse_id
			)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
			ON CONFLICT (booking_id, inventory_item_id) DO NOTHING;
			`, b.BookingID, bi.InventoryItemID, bi.Quantity, bi.Price,
				bi.PickupWarehouseID, bi.ReturnWarehouseID)
			if err != nil {
				return fmt.Errorf("seed: insert booking item %q/%q: %w", b.BookingID, bi.InventoryItemID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
