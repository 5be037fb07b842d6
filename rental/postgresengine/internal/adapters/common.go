package adapters

import (
	"context"
	"database/sql"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// readsFromReplica reports whether a read should go to the replica.
func readsFromReplica(ctx context.Context, hasReplica bool) bool {
	return hasReplica && rental.GetConsistencyLevel(ctx) == rental.EventualConsistency
}

var readCommitted = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

// stdRows wraps standard library sql.Rows to implement DBRows interface.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Err() error {
	return s.rows.Err()
}

func (s *stdRows) Close() error {
	return s.rows.Close()
}

// stdResult wraps standard library sql.Result to implement DBResult interface.
type stdResult struct {
	result sql.Result
}

func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}

// stdQuerier is the subset of *sql.DB, *sql.Tx, *sqlx.DB and *sqlx.Tx the adapters use.
type stdQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func stdQuery(ctx context.Context, q stdQuerier, query string) (DBRows, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func stdExec(ctx context.Context, q stdQuerier, query string) (DBResult, error) {
	result, err := q.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdResult{result: result}, nil
}

// stdTx wraps *sql.Tx. Commit and Rollback ignore ctx, database/sql binds the transaction to the BeginTx context.
type stdTx struct {
	tx *sql.Tx
}

func (t *stdTx) Query(ctx context.Context, query string) (DBRows, error) {
	return stdQuery(ctx, t.tx, query)
}

func (t *stdTx) Exec(ctx context.Context, query string) (DBResult, error) {
	return stdExec(ctx, t.tx, query)
}

func (t *stdTx) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t *stdTx) Rollback(_ context.Context) error {
	return t.tx.Rollback()
}
