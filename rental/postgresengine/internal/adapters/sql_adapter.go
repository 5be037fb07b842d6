package adapters

import (
	"context"
	"database/sql"
)

// SQLAdapter implements DBAdapter for sql.DB.
type SQLAdapter struct {
	db      *sql.DB
	replica *sql.DB
}

// NewSQLAdapter creates a new SQL adapter.
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

// NewSQLAdapterWithReplica creates a new SQL adapter with a replica for eventually consistent reads.
func NewSQLAdapterWithReplica(db *sql.DB, replica *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db, replica: replica}
}

func (s *SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	db := s.db
	if readsFromReplica(ctx, s.replica != nil) {
		db = s.replica
	}

	return stdQuery(ctx, db, query)
}

func (s *SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	return stdExec(ctx, s.db, query)
}

func (s *SQLAdapter) BeginTx(ctx context.Context) (DBTx, error) {
	tx, err := s.db.BeginTx(ctx, readCommitted)
	if err != nil {
		return nil, err
	}

	return &stdTx{tx: tx}, nil
}
