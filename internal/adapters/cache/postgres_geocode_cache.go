package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/platform/obs"
)

// PostgresGeocodeCache is a SQL-backed cache mapping addresses to
// coordinates. It persists across restarts and doubles as an audit of every
// address the service has resolved.
type PostgresGeocodeCache struct {
	DB *sql.DB
}

func NewPostgresGeocodeCache(db *sql.DB) *PostgresGeocodeCache {
	return &PostgresGeocodeCache{DB: db}
}

func (c *PostgresGeocodeCache) Get(ctx context.Context, address string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if c.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	q := `
	SELECT lat, lon
	FROM geocode_cache
	WHERE address = $1;
	`

	var lat, lon float64
	err = c.DB.QueryRowContext(ctx, q, address).Scan(&lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, true, nil
}

func (c *PostgresGeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) error {
	if c.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	q := `
	INSERT INTO geocode_cache (address, lat, lon)
	VALUES ($1, $2, $3)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`

	if _, err := c.DB.ExecContext(ctx, q, address, coords.Lat, coords.Lon); err != nil {
		return fmt.Errorf("insert geocode cache coord=%q: %w", address, err)
	}

	return nil
}
