// Package postgreswrapper provides helpers to run tests against the PostgreSQL rental engine
// with one of the supported database adapters, chosen by the ADAPTER_TYPE environment variable
// ("pgx.pool" (default), "sql.db" or "sqlx.db").
//
// Tests that use it are skipped when the database from RENTAL_DATABASE_URL is not reachable.
package postgreswrapper
