package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter implements DBAdapter for sqlx.DB.
type SQLXAdapter struct {
	db      *sqlx.DB
	replica *sqlx.DB
}

// NewSQLXAdapter creates a new SQLX adapter.
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

// NewSQLXAdapterWithReplica creates a new SQLX adapter with a replica for eventually consistent reads.
func NewSQLXAdapterWithReplica(db *sqlx.DB, replica *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db, replica: replica}
}

// Query executes a query using the sqlx.DB and returns wrapped rows.
func (s *SQLXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	db := s.db
	if readsFromReplica(ctx, s.replica != nil) {
		db = s.replica
	}

	return stdQuery(ctx, db, query)
}

// Exec executes a query using the sqlx.DB and returns wrapped result.
func (s *SQLXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	return stdExec(ctx, s.db, query)
}

// BeginTx opens a READ COMMITTED transaction with BeginTxx.
func (s *SQLXAdapter) BeginTx(ctx context.Context) (DBTx, error) {
	tx, err := s.db.BeginTxx(ctx, readCommitted)
	if err != nil {
		return nil, err
	}

	return &stdTx{tx: tx.Tx}, nil
}
