package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/platform/obs"
	"rental-dispatch-service/internal/ports"
	"rental-dispatch-service/internal/services"
)

const bookingColumns = `
	booking_id, order_number, customer_id, customer_name, customer_phone,
	delivery_date, delivery_window, pickup_date, pickup_window,
	delivery_address, delivery_lat, delivery_lng,
	rental_days, status, delivery_driver_id, pickup_driver_id,
	subtotal, delivery_fee, tip, total, setup_instructions`

// ListBookings returns all bookings with their items attached.
func (r *PostgresRepository) ListBookings(ctx context.Context) (_ []domain.Booking, err error) {
	defer obs.Time(ctx, "repo.ListBookings")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres repository: DB is nil")
	}
	return listBookings(ctx, r.DB)
}

func listBookings(ctx context.Context, q querier) ([]domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings
	ORDER BY delivery_date, order_number;
	`
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: query bookings table: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0, 64)
	index := make(map[string]int)

	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list bookings: %w", err)
		}
		index[b.ID] = len(bookings)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: row iteration: %w", err)
	}

	if err := attachItems(ctx, q, bookings, index); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return bookings, nil
}

// GetBooking returns one booking by id, or ports.ErrNotFound.
func (r *PostgresRepository) GetBooking(ctx context.Context, id string) (_ domain.Booking, err error) {
	defer obs.Time(ctx, "repo.GetBooking")(&err)

	if r.DB == nil {
		return domain.Booking{}, errors.New("postgres repository: DB is nil")
	}

	query := `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE booking_id = $1;
	`
	row := r.DB.QueryRowContext(ctx, query, id)

	b, err := scanBooking(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, ports.ErrNotFound
	}
	if err != nil {
		return domain.Booking{}, fmt.Errorf("get booking %q: %w", id, err)
	}

	bookings := []domain.Booking{b}
	if err := attachItems(ctx, r.DB, bookings, map[string]int{b.ID: 0}); err != nil {
		return domain.Booking{}, fmt.Errorf("get booking %q: %w", id, err)
	}

	return bookings[0], nil
}

// CreateBooking checks item availability and inserts the booking atomically.
// The check and the inserts share one SERIALIZABLE transaction, so two
// concurrent bookings cannot both pass the check and reserve the same item
// for overlapping dates.
func (r *PostgresRepository) CreateBooking(ctx context.Context, b domain.Booking) (_ domain.AvailabilityResult, err error) {
	defer obs.Time(ctx, "repo.CreateBooking")(&err)

	if r.DB == nil {
		return domain.AvailabilityResult{}, errors.New("postgres repository: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return domain.AvailabilityResult{}, fmt.Errorf("create booking: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := listBookings(ctx, tx)
	if err != nil {
		return domain.AvailabilityResult{}, fmt.Errorf("create booking: %w", err)
	}

	itemIDs := make([]string, 0, len(b.Items))
	for _, bi := range b.Items {
		itemIDs = append(itemIDs, bi.InventoryItemID)
	}

	items, err := getItems(ctx, tx, itemIDs)
	if err != nil {
		return domain.AvailabilityResult{}, fmt.Errorf("create booking: %w", err)
	}

	result := services.CheckAvailability(items, existing, itemIDs, b.DeliveryDate, b.PickupDate)
	if !result.Available {
		return result, nil
	}

	insertBooking := `
	INSERT INTO bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
	        $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err = tx.ExecContext(ctx, insertBooking,
		b.ID, b.OrderNumber, b.CustomerID, b.CustomerName, b.CustomerPhone,
		b.DeliveryDate, b.DeliveryWindow, b.PickupDate, b.PickupWindow,
		b.DeliveryAddress, b.DeliveryLat, b.DeliveryLng,
		b.RentalDays, string(b.Status), b.DeliveryDriverID, b.PickupDriverID,
		b.Subtotal, b.DeliveryFee, b.Tip, b.Total, b.SetupInstructions,
	)
	if err != nil {
		return domain.AvailabilityResult{}, fmt.Errorf("create booking: insert booking %q: %w", b.ID, err)
	}

	insertItem := `
	INSERT INTO booking_items (
		booking_id, inventory_item_id, quantity, price,
		pickup_warehouse_id, return_warehouse_id
	)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''));
	`
	for _, bi := range b.Items {
		if _, err := tx.ExecContext(ctx, insertItem,
			b.ID, bi.InventoryItemID, bi.Quantity, bi.Price,
			bi.PickupWarehouseID, bi.ReturnWarehouseID,
		); err != nil {
			return domain.AvailabilityResult{}, fmt.Errorf("create booking: insert item %q: %w", bi.InventoryItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.AvailabilityResult{}, fmt.Errorf("create booking: commit: %w", err)
	}

	return result, nil
}

func scanBooking(scan func(...any) error) (domain.Booking, error) {
	var (
		b                  domain.Booking
		lat, lng           sql.NullFloat64
		deliveryD, pickupD sql.NullString
		status             string
	)

	err := scan(
		&b.ID, &b.OrderNumber, &b.CustomerID, &b.CustomerName, &b.CustomerPhone,
		&b.DeliveryDate, &b.DeliveryWindow, &b.PickupDate, &b.PickupWindow,
		&b.DeliveryAddress, &lat, &lng,
		&b.RentalDays, &status, &deliveryD, &pickupD,
		&b.Subtotal, &b.DeliveryFee, &b.Tip, &b.Total, &b.SetupInstructions,
	)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("scan booking row: %w", err)
	}

	b.Status = domain.BookingStatus(status)
	if lat.Valid {
		b.DeliveryLat = &lat.Float64
	}
	if lng.Valid {
		b.DeliveryLng = &lng.Float64
	}
	if deliveryD.Valid {
		b.DeliveryDriverID = &deliveryD.String
	}
	if pickupD.Valid {
		b.PickupDriverID = &pickupD.String
	}

	return b, nil
}

func attachItems(ctx context.Context, q querier, bookings []domain.Booking, index map[string]int) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	query := `
	SELECT
		bi.booking_id, bi.inventory_item_id, ii.name, bi.quantity, bi.price,
		COALESCE(bi.pickup_warehouse_id, ''), COALESCE(bi.return_warehouse_id, '')
	FROM booking_items bi
	JOIN inventory_items ii ON ii.inventory_item_id = bi.inventory_item_id
	WHERE bi.booking_id = ANY($1::text[])
	ORDER BY bi.booking_id, bi.inventory_item_id;
	`
	rows, err := q.QueryContext(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("query booking_items table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID string
		var bi domain.BookingItem
		if err := rows.Scan(
			&bookingID, &bi.InventoryItemID, &bi.Name, &bi.Quantity, &bi.Price,
			&bi.PickupWarehouseID, &bi.ReturnWarehouseID,
		); err != nil {
			return fmt.Errorf("scan booking item row: %w", err)
		}

		if i, ok := index[bookingID]; ok {
			bookings[i].Items = append(bookings[i].Items, bi)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("booking item row iteration: %w", err)
	}

	return nil
}
