// Package memoryengine provides an in-process rental.Engine.
//
// Transactions are serialized by one mutex and run against a cloned copy of the state,
// which replaces the committed state only when the transaction function returns nil.
// Row locks are therefore implicit. The engine backs the handler tests and the demo mode of cmd/rental-api.
package memoryengine
