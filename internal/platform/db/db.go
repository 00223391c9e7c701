package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Open connects to postgres through the pgx stdlib driver and verifies the
// connection before returning. Pool sizing is fixed: the service runs a
// handful of concurrent dispatch requests, not a high-fanout workload.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db: verify postgres connection: %w", err)
	}

	return db, nil
}
