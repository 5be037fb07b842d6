// Package rental provides the core types of the gear rental and inventory consistency engine.
//
// The package is storage-agnostic. It defines the entities (items, borrow records, rental requests,
// collections and collection access requests), the Inventory Ledger rules that derive an item's
// available quantity and status from its open borrow records, the typed rule violations returned
// by every operation, and the persistence port (Tx, ReadModel, Engine) that engines implement.
//
// Available engines:
//   - postgresengine: PostgreSQL with row-level locking, supporting pgx.Pool, sql.DB and sqlx.DB
//   - memoryengine: an in-process engine that serialises transactions, for tests and demos
//
// Observability follows the same dependency-free pattern for all engines: Logger, ContextualLogger,
// MetricsCollector and TracingCollector are small interfaces that callers implement or take from
// the oteladapters package.
package rental
