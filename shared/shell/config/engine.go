package config

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/rental/memoryengine"
	"github.com/AntonStoeckl/gear-rental-go/rental/postgresengine"
)

// Engine kinds and postgres adapters accepted by OpenEngine.
const (
	EngineMemory   = "memory"
	EnginePostgres = "postgres"

	AdapterPGXPool = "pgxpool"
	AdapterSQLDB   = "sqldb"
	AdapterSQLX    = "sqlx"
)

var (
	// ErrUnknownEngine is returned for an engine kind other than memory or postgres.
	ErrUnknownEngine = errors.New("unknown engine")

	// ErrUnknownAdapter is returned for a postgres adapter other than pgxpool, sqldb or sqlx.
	ErrUnknownAdapter = errors.New("unknown postgres adapter")
)

// EngineConfig selects the storage engine of a binary.
type EngineConfig struct {
	Kind         string
	Adapter      string
	CreateSchema bool
}

// OpenEngine opens the configured engine. The returned func releases its connections and must be called
// once the engine is no longer used. A replica is attached when RENTAL_REPLICA_DATABASE_URL is set.
func OpenEngine(ctx context.Context, cfg EngineConfig, options ...postgresengine.Option) (rental.Engine, func(), error) {
	switch cfg.Kind {
	case EngineMemory:
		engine, err := memoryengine.NewEngine()
		if err != nil {
			return nil, nil, err
		}

		return engine, func() {}, nil

	case EnginePostgres:
		engine, closeEngine, err := openPostgresEngine(ctx, cfg.Adapter, options)
		if err != nil {
			if closeEngine != nil {
				closeEngine()
			}

			return nil, nil, err
		}

		if cfg.CreateSchema {
			if err = engine.CreateSchema(ctx); err != nil {
				closeEngine()
				return nil, nil, err
			}
		}

		return engine, closeEngine, nil

	default:
		return nil, nil, errors.Join(ErrUnknownEngine, errors.New(cfg.Kind))
	}
}

func openPostgresEngine(
	ctx context.Context,
	adapter string,
	options []postgresengine.Option,
) (*postgresengine.Engine, func(), error) {

	replicaDSN, hasReplica := PostgresReplicaDSN()

	switch adapter {
	case AdapterPGXPool:
		pool, err := NewPGXPool(ctx)
		if err != nil {
			return nil, nil, err
		}

		if !hasReplica {
			engine, err := postgresengine.NewEngineFromPGXPool(pool, options...)
			return engine, pool.Close, err
		}

		replica, err := NewReplicaPGXPool(ctx)
		if err != nil {
			return nil, pool.Close, err
		}

		engine, err := postgresengine.NewEngineFromPGXPoolWithReplica(pool, replica, options...)

		return engine, func() { pool.Close(); replica.Close() }, err

	case AdapterSQLDB:
		db, err := PostgresSQLDBConfig(ctx, PostgresDSN())
		if err != nil {
			return nil, nil, err
		}

		if !hasReplica {
			engine, err := postgresengine.NewEngineFromSQLDB(db, options...)
			return engine, func() { _ = db.Close() }, err
		}

		replica, err := PostgresSQLDBConfig(ctx, replicaDSN)
		if err != nil {
			return nil, func() { _ = db.Close() }, err
		}

		engine, err := postgresengine.NewEngineFromSQLDBWithReplica(db, replica, options...)

		return engine, func() { _ = db.Close(); _ = replica.Close() }, err

	case AdapterSQLX:
		db, err := PostgresSQLXConfig(ctx, PostgresDSN())
		if err != nil {
			return nil, nil, err
		}

		if !hasReplica {
			engine, err := postgresengine.NewEngineFromSQLX(db, options...)
			return engine, func() { _ = db.Close() }, err
		}

		replica, err := PostgresSQLXConfig(ctx, replicaDSN)
		if err != nil {
			return nil, func() { _ = db.Close() }, err
		}

		engine, err := postgresengine.NewEngineFromSQLXWithReplica(db, replica, options...)

		return engine, func() { _ = db.Close(); _ = replica.Close() }, err

	default:
		return nil, nil, errors.Join(ErrUnknownAdapter, errors.New(adapter))
	}
}
