// Package shell is the imperative shell around the gear rental core.
//
// It maps domain events to the storable events of the audit log and back, runs command handlers
// with retry on concurrency conflicts, and holds the observability helpers that the
// observable wrappers use.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
