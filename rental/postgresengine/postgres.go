package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/rental/postgresengine/internal/adapters"
)

const (
	logMsgBuildQueryFailed     = "failed to build sql statement"
	logMsgDBQueryFailed        = "database query execution failed"
	logMsgDBExecFailed         = "database statement execution failed"
	logMsgCloseRowsFailed      = "failed to close database rows"
	logMsgScanRowFailed        = "failed to scan database row"
	logMsgRowsAffectedFailed   = "failed to get rows affected count"
	logMsgBeginTxFailed        = "failed to begin transaction"
	logMsgCommitFailed         = "failed to commit transaction"
	logMsgRollbackFailed       = "failed to roll back transaction"
	logMsgTxCommitted          = "transaction committed"
	logMsgTxRolledBack         = "transaction rolled back"
	logMsgConcurrencyConflict  = "concurrency conflict detected"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "rental engine operation: "
	logAttrError               = "error"
	logAttrQuery               = "query"
	logAttrAction              = "action"
	logAttrDurationMS          = "duration_ms"
	logAttrRowsAffected        = "rows_affected"
	logAttrViolationKind       = "violation_kind"
	logAttrTablePrefix         = "table_prefix"
	logActionCreateSchema      = "create schema"
	dialectPostgres            = "postgres"
	castJsonb                  = "?::jsonb"
	aliasItems                 = "i"
	aliasBorrows               = "b"
	aliasCollections           = "c"
	aliasCollectionItems       = "ci"
	aliasOpenBorrows           = "open_borrows"
	colID                      = "id"
	colLibraryID               = "library_id"
	colTitle                   = "title"
	colDescription             = "description"
	colLocation                = "location"
	colQuantity                = "quantity"
	colStatus                  = "status"
	colCreatedAt               = "created_at"
	colItemID                  = "item_id"
	colPatronID                = "patron_id"
	colRentalRequestID         = "rental_request_id"
	colBorrowedAt              = "borrowed_at"
	colReturnedAt              = "returned_at"
	colName                    = "name"
	colRole                    = "role"
	colRentalsLastViewedAt     = "rentals_last_viewed_at"
	colAccessLastViewedAt      = "access_requests_last_viewed_at"
	colApproverID              = "approver_id"
	colApprovedDate            = "approved_date"
	colRentStartDate           = "rent_start_date"
	colRentReturnDate          = "rent_return_date"
	colIsPrivate               = "is_private"
	colCreatedBy               = "created_by"
	colCollectionID            = "collection_id"
	colEventType               = "event_type"
	colOccurredAt              = "occurred_at"
	colPayload                 = "payload"
	colMetadata                = "metadata"
	colSequenceNumber          = "sequence_number"
)

var (
	ErrBuildingQueryFailed         = errors.New("building sql statement failed")
	ErrQueryingFailed              = errors.New("database query failed")
	ErrExecutingFailed             = errors.New("database statement failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrBeginningTransactionFailed  = errors.New("beginning transaction failed")
	ErrCommittingTransactionFailed = errors.New("committing transaction failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event from db row failed")
)

// Engine is a rental.Engine on PostgreSQL.
type Engine struct {
	db               adapters.DBAdapter
	tables           tableNames
	logger           rental.Logger
	contextualLogger rental.ContextualLogger
	metricsCollector rental.MetricsCollector
	tracingCollector rental.TracingCollector
}

type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

// NewEngineFromPGXPool creates a new Engine using a pgx Pool with optional configuration.
func NewEngineFromPGXPool(db *pgxpool.Pool, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, rental.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapter(db), options...)
}

// NewEngineFromPGXPoolWithReplica creates a new Engine using a primary and a replica pgx Pool.
// The replica serves read model queries whose context carries rental.EventualConsistency.
func NewEngineFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Engine, error) {
	if db == nil || replica == nil {
		return nil, rental.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewEngineFromSQLDB creates a new Engine using a sql.DB with optional configuration.
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, rental.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), options...)
}

// NewEngineFromSQLDBWithReplica creates a new Engine using a primary and a replica sql.DB.
func NewEngineFromSQLDBWithReplica(db *sql.DB, replica *sql.DB, options ...Option) (*Engine, error) {
	if db == nil || replica == nil {
		return nil, rental.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapterWithReplica(db, replica), options...)
}

// NewEngineFromSQLX creates a new Engine using a sqlx.DB with optional configuration.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, rental.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLXAdapter(db), options...)
}

// NewEngineFromSQLXWithReplica creates a new Engine using a primary and a replica sqlx.DB.
func NewEngineFromSQLXWithReplica(db *sqlx.DB, replica *sqlx.DB, options ...Option) (*Engine, error) {
	if db == nil || replica == nil {
		return nil, rental.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLXAdapterWithReplica(db, replica), options...)
}

func newEngine(db adapters.DBAdapter, options ...Option) (*Engine, error) {
	e := &Engine{
		db:     db,
		tables: newTableNames(DefaultTableNamePrefix),
	}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// WithinTransaction runs fn inside one READ COMMITTED transaction on the primary database.
// The transaction is committed when fn returns nil and rolled back otherwise, also when fn panics.
func (e *Engine) WithinTransaction(ctx context.Context, fn rental.TxFunc) error {
	ctx, span := e.startTxSpan(ctx)
	start := time.Now()

	err := e.runTransaction(ctx, fn)

	e.observeTransaction(ctx, span, time.Since(start), err)

	return err
}

func (e *Engine) runTransaction(ctx context.Context, fn rental.TxFunc) error {
	dbTx, beginErr := e.db.BeginTx(ctx)
	if beginErr != nil {
		e.logError(ctx, logMsgBeginTxFailed, beginErr)
		return errors.Join(ErrBeginningTransactionFailed, beginErr)
	}

	// A panicking fn must not leave the connection checked out with its row locks held.
	defer func() {
		if p := recover(); p != nil {
			e.rollback(ctx, dbTx)
			panic(p)
		}
	}()

	if fnErr := fn(ctx, &transaction{engine: e, db: dbTx}); fnErr != nil {
		e.rollback(ctx, dbTx)
		return fnErr
	}

	if commitErr := dbTx.Commit(ctx); commitErr != nil {
		if violation := e.translateDBError(commitErr); violation != nil {
			return violation
		}

		e.logError(ctx, logMsgCommitFailed, commitErr)

		return errors.Join(ErrCommittingTransactionFailed, commitErr)
	}

	return nil
}

// rollback runs without the caller's cancellation so an aborted request still releases its locks.
func (e *Engine) rollback(ctx context.Context, dbTx adapters.DBTx) {
	if rollbackErr := dbTx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
		e.logWarn(ctx, logMsgRollbackFailed, logAttrError, rollbackErr.Error())
	}
}

func (e *Engine) builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// toSQL renders a goqu statement with interpolated values.
func (e *Engine) toSQL(ctx context.Context, statement sqlBuilder, action string) (string, error) {
	sqlQuery, _, toSQLErr := statement.ToSQL()
	if toSQLErr != nil {
		e.logError(ctx, logMsgBuildQueryFailed, toSQLErr, logAttrAction, action)
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// executeQuery executes the SQL query and logs it with timing information.
func (e *Engine) executeQuery(
	ctx context.Context,
	q adapters.Querier,
	sqlQuery string,
	action string,
) (adapters.DBRows, error) {

	start := time.Now()
	rows, queryErr := q.Query(ctx, sqlQuery)
	e.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if queryErr != nil {
		return nil, e.wrapDBError(ctx, queryErr, ErrQueryingFailed, logMsgDBQueryFailed, sqlQuery)
	}

	return rows, nil
}

// executeSQL executes a statement and returns the number of affected rows.
func (e *Engine) executeSQL(
	ctx context.Context,
	q adapters.Querier,
	sqlQuery string,
	action string,
) (int64, error) {

	start := time.Now()
	result, execErr := q.Exec(ctx, sqlQuery)
	e.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if execErr != nil {
		return 0, e.wrapDBError(ctx, execErr, ErrExecutingFailed, logMsgDBExecFailed, sqlQuery)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		e.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr, logAttrAction, action)
		return 0, errors.Join(ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// exec builds and executes a statement.
func (e *Engine) exec(ctx context.Context, q adapters.Querier, statement sqlBuilder, action string) (int64, error) {
	sqlQuery, buildErr := e.toSQL(ctx, statement, action)
	if buildErr != nil {
		return 0, buildErr
	}

	return e.executeSQL(ctx, q, sqlQuery, action)
}

// closeRows safely closes database rows and logs any errors.
func (e *Engine) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		e.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

// queryRows builds and executes a select statement and scans every row.
func queryRows[T any](
	ctx context.Context,
	e *Engine,
	q adapters.Querier,
	statement sqlBuilder,
	action string,
	scan func(adapters.DBRows) (T, error),
) ([]T, error) {

	sqlQuery, buildErr := e.toSQL(ctx, statement, action)
	if buildErr != nil {
		return nil, buildErr
	}

	rows, queryErr := e.executeQuery(ctx, q, sqlQuery, action)
	if queryErr != nil {
		return nil, queryErr
	}
	defer e.closeRows(ctx, rows)

	result := make([]T, 0)
	for rows.Next() {
		row, scanErr := scan(rows)
		if scanErr != nil {
			e.logError(ctx, logMsgScanRowFailed, scanErr, logAttrAction, action)
			return nil, errors.Join(ErrScanningDBRowFailed, scanErr)
		}

		result = append(result, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, e.wrapDBError(ctx, rowsErr, ErrQueryingFailed, logMsgDBQueryFailed, sqlQuery)
	}

	return result, nil
}

// queryOne is queryRows for statements that select at most one row.
func queryOne[T any](
	ctx context.Context,
	e *Engine,
	q adapters.Querier,
	statement sqlBuilder,
	action string,
	scan func(adapters.DBRows) (T, error),
) (T, bool, error) {

	var empty T

	rows, err := queryRows(ctx, e, q, statement, action, scan)
	if err != nil || len(rows) == 0 {
		return empty, false, err
	}

	return rows[0], true, nil
}

func scanInt(rows adapters.DBRows) (int, error) {
	var n int
	err := rows.Scan(&n)

	return n, err
}

func scanID(rows adapters.DBRows) (uuid.UUID, error) {
	var id uuid.UUID
	err := rows.Scan(&id)

	return id, err
}

var _ rental.Engine = (*Engine)(nil)
