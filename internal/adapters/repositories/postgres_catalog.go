package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/platform/obs"
	"rental-dispatch-service/internal/ports"
)

// ListDrivers returns all drivers.
func (r *PostgresRepository) ListDrivers(ctx context.Context) (_ []domain.Driver, err error) {
	defer obs.Time(ctx, "repo.ListDrivers")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres repository: DB is nil")
	}

	query := `
	SELECT
		driver_id, name, email, phone, license_number, is_active,
		total_deliveries, total_earnings, on_time_count, late_count, rating
	FROM drivers
	ORDER BY name, driver_id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	drivers := make([]domain.Driver, 0, 16)
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Email, &d.Phone, &d.LicenseNumber, &d.IsActive,
			&d.TotalDeliveries, &d.TotalEarnings, &d.OnTimeCount, &d.LateCount, &d.Rating,
		); err != nil {
			return nil, fmt.Errorf("list drivers: scan row: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drivers: row iteration: %w", err)
	}

	return drivers, nil
}

// GetDriver returns one driver by id, or ports.ErrNotFound.
func (r *PostgresRepository) GetDriver(ctx context.Context, id string) (_ domain.Driver, err error) {
	defer obs.Time(ctx, "repo.GetDriver")(&err)

	if r.DB == nil {
		return domain.Driver{}, errors.New("postgres repository: DB is nil")
	}

	query := `
	SELECT
		driver_id, name, email, phone, license_number, is_active,
		total_deliveries, total_earnings, on_time_count, late_count, rating
	FROM drivers
	WHERE driver_id = $1;
	`
	var d domain.Driver
	err = r.DB.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Email, &d.Phone, &d.LicenseNumber, &d.IsActive,
		&d.TotalDeliveries, &d.TotalEarnings, &d.OnTimeCount, &d.LateCount, &d.Rating,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Driver{}, ports.ErrNotFound
	}
	if err != nil {
		return domain.Driver{}, fmt.Errorf("get driver %q: %w", id, err)
	}

	return d, nil
}

// ListWarehouses returns all warehouses.
func (r *PostgresRepository) ListWarehouses(ctx context.Context) (_ []domain.Warehouse, err error) {
	defer obs.Time(ctx, "repo.ListWarehouses")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres repository: DB is nil")
	}

	query := `
	SELECT warehouse_id, name, address, lat, lng, is_active
	FROM warehouses
	ORDER BY warehouse_id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: query warehouses table: %w", err)
	}
	defer rows.Close()

	warehouses := make([]domain.Warehouse, 0, 8)
	for rows.Next() {
		var w domain.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.Lat, &w.Lng, &w.IsActive); err != nil {
			return nil, fmt.Errorf("list warehouses: scan row: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list warehouses: row iteration: %w", err)
	}

	return warehouses, nil
}

// FirstActiveWarehouse returns the depot for route optimization.
func (r *PostgresRepository) FirstActiveWarehouse(ctx context.Context) (_ domain.Warehouse, err error) {
	defer obs.Time(ctx, "repo.FirstActiveWarehouse")(&err)

	if r.DB == nil {
		return domain.Warehouse{}, errors.New("postgres repository: DB is nil")
	}

	query := `
	SELECT warehouse_id, name, address, lat, lng, is_active
	FROM warehouses
	WHERE is_active
	ORDER BY warehouse_id
	LIMIT 1;
	`
	var w domain.Warehouse
	err = r.DB.QueryRowContext(ctx, query).Scan(&w.ID, &w.Name, &w.Address, &w.Lat, &w.Lng, &w.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Warehouse{}, ports.ErrNotFound
	}
	if err != nil {
		return domain.Warehouse{}, fmt.Errorf("first active warehouse: %w", err)
	}

	return w, nil
}

const inventoryColumns = `
	inventory_item_id, name, category, current_warehouse_id, home_warehouse_id,
	min_space_sqft, requires_power, allowed_surfaces`

// ListItems returns all inventory items.
func (r *PostgresRepository) ListItems(ctx context.Context) (_ []domain.InventoryItem, err error) {
	defer obs.Time(ctx, "repo.ListItems")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres repository: DB is nil")
	}

	query := `
	SELECT ` + inventoryColumns + `
	FROM inventory_items
	ORDER BY inventory_item_id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: query inventory_items table: %w", err)
	}
	defer rows.Close()

	items := make([]domain.InventoryItem, 0, 64)
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: row iteration: %w", err)
	}

	return items, nil
}

// GetItems returns the items found for the given ids, keyed by id. Missing
// ids are absent from the map; the availability checker turns absence into a
// "not found" conflict.
func (r *PostgresRepository) GetItems(ctx context.Context, ids []string) (_ map[string]domain.InventoryItem, err error) {
	defer obs.Time(ctx, "repo.GetItems")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres repository: DB is nil")
	}
	return getItems(ctx, r.DB, ids)
}

func getItems(ctx context.Context, q querier, ids []string) (map[string]domain.InventoryItem, error) {
	if len(ids) == 0 {
		return map[string]domain.InventoryItem{}, nil
	}

	query := `
	SELECT ` + inventoryColumns + `
	FROM inventory_items
	WHERE inventory_item_id = ANY($1::text[]);
	`
	rows, err := q.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get items: query inventory_items table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.InventoryItem, len(ids))
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("get items: %w", err)
		}
		out[it.ID] = it
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get items: row iteration: %w", err)
	}

	return out, nil
}

func scanItem(scan func(...any) error) (domain.InventoryItem, error) {
	var (
		it       domain.InventoryItem
		current  sql.NullString
		surfaces string
	)

	err := scan(
		&it.ID, &it.Name, &it.Category, &current, &it.HomeWarehouseID,
		&it.MinSpaceSqft, &it.RequiresPower, &surfaces,
	)
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("scan inventory item row: %w", err)
	}

	if current.Valid {
		it.CurrentWarehouseID = &current.String
	}
	if surfaces != "" {
		it.AllowedSurfaces = strings.Split(surfaces, ",")
	}

	return it, nil
}
