package repositories

import (
	"context"
	"database/sql"
)

// PostgresRepository implements the booking, driver, warehouse and inventory
// ports over a single postgres database.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// querier lets the read queries run either on the pool or inside a
// transaction (CreateBooking re-reads bookings under SERIALIZABLE).
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
