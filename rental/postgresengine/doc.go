// Package postgresengine implements rental.Engine on PostgreSQL.
//
// SQL is built with goqu and executed through an internal adapter, so the engine can run on a pgxpool.Pool,
// a database/sql DB (lib/pq driver) or a sqlx.DB. Transactions run at READ COMMITTED on the primary and
// serialize competing writers with SELECT ... FOR UPDATE row locks. Read model queries may be served by a
// replica when the context asks for rental.EventualConsistency.
//
// Storage errors are translated into rule violations where they carry a meaning for callers:
//   - a unique violation on the "one pending request" indexes becomes rental.KindDuplicateRequest
//   - other unique violations, serialization failures and deadlocks become rental.KindConflict, which handlers retry
package postgresengine
