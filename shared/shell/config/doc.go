// Package config builds database connection pools and telemetry providers for the rental binaries.
//
// DSNs come from the environment (RENTAL_DATABASE_URL, RENTAL_REPLICA_DATABASE_URL) and fall back to
// the local development database started by docker compose. Telemetry is exported via OTLP/HTTP to
// RENTAL_OTLP_ENDPOINT when it is set.
package config
