package config

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrCreatingPGXPoolFailed is returned when the pgx pool cannot be configured or created.
var ErrCreatingPGXPoolFailed = errors.New("creating pgx pool failed")

// PostgresPGXPoolConfig creates a pgxpool.Config for the given DSN.
func PostgresPGXPoolConfig(dsn string) (*pgxpool.Config, error) {
	const defaultMaxConnections = int32(20)
	const defaultMinConnections = int32(2)
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrCreatingPGXPoolFailed, err)
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}

// NewPGXPool creates and pings a pgx pool for the primary database.
func NewPGXPool(ctx context.Context) (*pgxpool.Pool, error) {
	return newPGXPool(ctx, PostgresDSN())
}

// NewReplicaPGXPool creates and pings a pgx pool for the replica database.
// It returns ErrNoReplicaConfigured when RENTAL_REPLICA_DATABASE_URL is not set.
func NewReplicaPGXPool(ctx context.Context) (*pgxpool.Pool, error) {
	dsn, ok := PostgresReplicaDSN()
	if !ok {
		return nil, ErrNoReplicaConfigured
	}

	return newPGXPool(ctx, dsn)
}

func newPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	dbConfig, err := PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, errors.Join(ErrCreatingPGXPoolFailed, err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, errors.Join(ErrCreatingPGXPoolFailed, pingErr)
	}

	return pool, nil
}
