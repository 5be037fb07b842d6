// Package registerpatron implements the Register Patron use case.
//
// The identity layer authenticates users; this feature records the profile the rental engine needs
// (display name and role). Registering the same id twice with the same data is an idempotent no-op.
package registerpatron
