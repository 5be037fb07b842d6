// Package main implements a contention simulation for the gear rental engine.
//
// A pool of workers fires a weighted mix of rental operations at a small inventory, so that many
// requests compete for the same units: patrons submit and cancel rental requests, librarians approve,
// deny, lend without a request and process returns. Every operation runs through the same instrumented
// handlers the HTTP API uses.
//
// When the run ends, the ledger of every item is checked: open borrows must never exceed the owned
// quantity, and the cached item status must match the status derived from the counts. The process
// exits with status 1 if any item is inconsistent.
//
// Usage:
//
//	rental-sim -engine memory -duration 30s -rate 500 -workers 16
//	rental-sim -engine postgres -adapter sqlx -create-schema -items 5 -patrons 200
//
// The scenario mix is set with -weights as six comma-separated integers in the order
// submit,approve,deny,cancel,borrow,return.
package main
