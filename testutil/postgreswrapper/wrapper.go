package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/rental/postgresengine"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell/config"
)

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

const connectTimeout = 3 * time.Second

// Wrapper abstracts over the database handles the engine can run on.
type Wrapper interface {
	Engine() *postgresengine.Engine
	Exec(ctx context.Context, query string) error
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool   *pgxpool.Pool
	engine *postgresengine.Engine
}

func (w *PGXPoolWrapper) Engine() *postgresengine.Engine {
	return w.engine
}

func (w *PGXPoolWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.pool.Exec(ctx, query)
	return err
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db     *sql.DB
	engine *postgresengine.Engine
}

func (w *SQLDBWrapper) Engine() *postgresengine.Engine {
	return w.engine
}

func (w *SQLDBWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.db.ExecContext(ctx, query)
	return err
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db     *sqlx.DB
	engine *postgresengine.Engine
}

func (w *SQLXWrapper) Engine() *postgresengine.Engine {
	return w.engine
}

func (w *SQLXWrapper) Exec(ctx context.Context, query string) error {
	_, err := w.db.ExecContext(ctx, query)
	return err
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig connects to the test database, creates the schema for the given table prefix,
// truncates it, and registers Close as test cleanup. The test is skipped when the database is not reachable.
func CreateWrapperWithTestConfig(t testing.TB, tablePrefix string, options ...postgresengine.Option) Wrapper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	options = append([]postgresengine.Option{postgresengine.WithTableNamePrefix(tablePrefix)}, options...)
	dsn := config.PostgresDSN()

	var wrapper Wrapper

	switch adapterType := strings.ToLower(os.Getenv("ADAPTER_TYPE")); adapterType {
	case typePGXPool, "":
		pool, err := config.NewPGXPool(ctx)
		if err != nil {
			t.Skipf("postgres is not reachable: %v", err)
		}

		engine, err := postgresengine.NewEngineFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating engine")
		wrapper = &PGXPoolWrapper{pool: pool, engine: engine}

	case typeSQLDB:
		db, err := config.PostgresSQLDBConfig(ctx, dsn)
		if err != nil {
			t.Skipf("postgres is not reachable: %v", err)
		}

		engine, err := postgresengine.NewEngineFromSQLDB(db, options...)
		require.NoError(t, err, "error creating engine")
		wrapper = &SQLDBWrapper{db: db, engine: engine}

	case typeSQLXDB:
		db, err := config.PostgresSQLXConfig(ctx, dsn)
		if err != nil {
			t.Skipf("postgres is not reachable: %v", err)
		}

		engine, err := postgresengine.NewEngineFromSQLX(db, options...)
		require.NoError(t, err, "error creating engine")
		wrapper = &SQLXWrapper{db: db, engine: engine}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterType))
	}

	t.Cleanup(wrapper.Close)

	require.NoError(t, wrapper.Engine().CreateSchema(context.Background()), "error creating schema")
	CleanUp(t, wrapper, tablePrefix)

	return wrapper
}

// CleanUp truncates all tables of the given prefix.
func CleanUp(t testing.TB, wrapper Wrapper, tablePrefix string) {
	t.Helper()

	query := "TRUNCATE TABLE " + strings.Join(postgresengine.TableNames(tablePrefix), ", ") + " RESTART IDENTITY CASCADE"
	require.NoError(t, wrapper.Exec(context.Background(), query), "error cleaning up the tables")
}
