package adapters

import "context"

// Querier runs SQL strings built by the engine.
type Querier interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBTx is an open database transaction.
type DBTx interface {
	Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBAdapter defines the interface for database operations needed by the rental engine.
// Query and Exec run outside a transaction; Query may be served by a replica.
type DBAdapter interface {
	Querier
	BeginTx(ctx context.Context) (DBTx, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
