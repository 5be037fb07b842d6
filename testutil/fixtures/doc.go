// Package fixtures seeds rental engines with entities for handler and engine tests.
//
// Fixtures write directly through rental.Tx and therefore bypass the business rules of the command handlers.
// They keep the Inventory Ledger consistent: seeded borrow records update the cached item status.
//
// This is testing infrastructure - not production code.
package fixtures
