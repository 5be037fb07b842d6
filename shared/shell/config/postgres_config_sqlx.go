package config

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// PostgresSQLXConfig creates a configured and pinged *sqlx.DB for the given DSN.
func PostgresSQLXConfig(ctx context.Context, dsn string) (*sqlx.DB, error) {
	const defaultMaxOpenConnections = 50
	const defaultMaxIdleConnections = 10

	db, err := sqlx.Open("postgres", dsn)
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
