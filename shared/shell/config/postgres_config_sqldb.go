package config

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq" // postgres driver
)

// ErrOpeningDatabaseFailed is returned when a database/sql or sqlx handle cannot be opened or pinged.
var ErrOpeningDatabaseFailed = errors.New("opening database failed")

// PostgresSQLDBConfig creates a configured and pinged *sql.DB for the given DSN.
func PostgresSQLDBConfig(ctx context.Context, dsn string) (*sql.DB, error) {
	const defaultMaxOpenConnections = 50
	const defaultMaxIdleConnections = 10

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, pingErr)
	}

	return db, nil
}
