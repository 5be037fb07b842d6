// Package adapters provide database adapter implementations for the PostgreSQL rental engine.
//
// The engine works with pgx.Pool, sql.DB and sqlx.DB. Each adapter opens READ COMMITTED transactions
// on the primary and serves non-transactional reads from an optional replica when the context
// asks for eventual consistency (see rental.WithEventualConsistency).
package adapters
