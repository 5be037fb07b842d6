// Package core contains the domain events and the decision model of the gear rental engine.
//
// Every successful mutation of the engine is described by exactly one domain event, e.g.
// RentalRequestApproved or BorrowedUnitsReturned. The events are appended to the audit log
// in the same transaction as the state change they describe.
//
// Decide functions in the feature slices are pure and return a DecisionResult.
package core
